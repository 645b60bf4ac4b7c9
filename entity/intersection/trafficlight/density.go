package trafficlight

import (
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

// densityScheduler 密度加权调度策略
// 功能：每个路口独立决策，依据两个方向组的排队车辆数切换相位
// 算法说明：
// 1. 绿灯时长达到maxGreen时无条件强制切换（防止饿死）
// 2. 绿灯时长不足minGreen时一律不切换
// 3. 其间当对向方向组车辆数超过当前方向组的switchRatio倍时切换
// 说明：全零队列时比较自然退化（0 > 0*ratio恒为假），无除法
type densityScheduler struct {
	minGreen    int32
	maxGreen    int32
	switchRatio float64
}

func newDensityScheduler(cfg config.Scheduler) *densityScheduler {
	return &densityScheduler{
		minGreen:    cfg.MinGreen,
		maxGreen:    cfg.MaxGreen,
		switchRatio: cfg.SwitchRatio,
	}
}

func (s *densityScheduler) Name() string {
	return "density"
}

// Decide 每tick的调度决策
func (s *densityScheduler) Decide(tick int32, grid entity.IGridManager) {
	for _, i := range grid.Intersections() {
		light := i.Light()
		switch {
		case light.Cycle() >= s.maxGreen:
			light.Switch()
		case light.Cycle() < s.minGreen:
			// 最短绿灯时长未到
		default:
			green := light.Phase().GreenAxis()
			cur := float64(i.AxisCount(green))
			opp := float64(i.AxisCount(opposite(green)))
			if opp > cur*s.switchRatio {
				light.Switch()
			}
		}
	}
}

func opposite(a entity.Axis) entity.Axis {
	if a == entity.AxisHorizontal {
		return entity.AxisVertical
	}
	return entity.AxisHorizontal
}
