package trafficlight

import (
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

// adaptiveScheduler 等待时长加权（自适应）调度策略
// 功能：每个路口独立决策，综合排队车辆数与累计等待时长评分
// 算法说明：
// 1. 方向组评分 score = 车辆数 + waitWeight × 组内等待时长之和
// 2. 绿灯时长达到maxGreen时强制切换，不足minGreen时不切换
// 3. 其间当对向评分超过当前评分的scoreRatio倍时切换
// 说明：等待时长取各车辆在当前坐标上的累计值，车辆移动后清零重计
type adaptiveScheduler struct {
	minGreen   int32
	maxGreen   int32
	scoreRatio float64
	waitWeight float64
}

func newAdaptiveScheduler(cfg config.Scheduler) *adaptiveScheduler {
	return &adaptiveScheduler{
		minGreen:   cfg.MinGreen,
		maxGreen:   cfg.MaxGreen,
		scoreRatio: cfg.ScoreRatio,
		waitWeight: cfg.WaitWeight,
	}
}

func (s *adaptiveScheduler) Name() string {
	return "adaptive"
}

func (s *adaptiveScheduler) score(i entity.IIntersection, a entity.Axis) float64 {
	return float64(i.AxisCount(a)) + s.waitWeight*float64(i.AxisWaitingTime(a))
}

// Decide 每tick的调度决策
func (s *adaptiveScheduler) Decide(tick int32, grid entity.IGridManager) {
	for _, i := range grid.Intersections() {
		light := i.Light()
		switch {
		case light.Cycle() >= s.maxGreen:
			light.Switch()
		case light.Cycle() < s.minGreen:
			// 最短绿灯时长未到
		default:
			green := light.Phase().GreenAxis()
			cur := s.score(i, green)
			opp := s.score(i, opposite(green))
			if opp > cur*s.scoreRatio {
				light.Switch()
			}
		}
	}
}
