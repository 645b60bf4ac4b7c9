package trafficlight

import (
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

// independentScheduler 完全独立调度策略
// 功能：每个路口独立计算与数据相关的目标绿灯时长，计时到达即切换
// 算法说明：
// 1. ratio = 当前方向组车辆数 / (对向方向组车辆数 + 1)，分母+1避免除零
// 2. 目标绿灯时长 = clamp(ratio × targetScale, minGreen, maxGreen)
// 3. 绿灯时长达到目标值时切换；目标值本身随队列状态逐tick重算
// 说明：与density/adaptive不同，此策略切换的是"时长目标"而非切换条件
type independentScheduler struct {
	minGreen    int32
	maxGreen    int32
	targetScale float64
}

func newIndependentScheduler(cfg config.Scheduler) *independentScheduler {
	return &independentScheduler{
		minGreen:    cfg.MinGreen,
		maxGreen:    cfg.MaxGreen,
		targetScale: cfg.TargetScale,
	}
}

func (s *independentScheduler) Name() string {
	return "independent"
}

// targetGreen 依据队列状态计算目标绿灯时长
func (s *independentScheduler) targetGreen(i entity.IIntersection) int32 {
	green := i.Light().Phase().GreenAxis()
	cur := float64(i.AxisCount(green))
	opp := float64(i.AxisCount(opposite(green)))
	target := int32(cur / (opp + 1) * s.targetScale)
	if target < s.minGreen {
		target = s.minGreen
	}
	if target > s.maxGreen {
		target = s.maxGreen
	}
	return target
}

// Decide 每tick的调度决策
func (s *independentScheduler) Decide(tick int32, grid entity.IGridManager) {
	for _, i := range grid.Intersections() {
		light := i.Light()
		if light.Cycle() >= s.targetGreen(i) {
			light.Switch()
		}
	}
}
