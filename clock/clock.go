package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

// Clock 仿真时钟管理器
// 功能：管理离散tick的推进，维护当前tick与模拟区间
// 说明：模拟严格按一次一tick推进，tick内没有任何操作会挂起；
// 一个tick要么完整执行，要么视为进程状态损坏
type Clock struct {
	START_STEP int32 // 起始tick
	END_STEP   int32 // 结束tick，模拟区间[START, END)

	Step int32 // 当前tick
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置，包含起始tick与总tick数
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		START_STEP: stepConfig.Start,
		END_STEP:   stepConfig.Start + stepConfig.Total,
	}
	c.Init()
	return c
}

// Init 初始化时钟状态
// 说明：重置当前tick为起始tick
func (c *Clock) Init() {
	c.Step = c.START_STEP
}

// Done 判断模拟区间是否已经走完
func (c *Clock) Done() bool {
	return c.Step >= c.END_STEP
}

// String 获取时钟的字符串表示
func (c *Clock) String() string {
	return fmt.Sprintf("tick %d/%d", c.Step, c.END_STEP)
}
