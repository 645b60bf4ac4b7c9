package trafficlight

import (
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

// fixedIntervalScheduler 固定周期调度策略
// 功能：所有信号灯同步，每interval个tick全网翻转一次相位
// 说明：目标相位由(tick/interval)%2直接决定，偶数段为东西绿；
// 与其他策略不同，该策略不依赖信号灯的相位计数器
type fixedIntervalScheduler struct {
	interval int32
}

func newFixedIntervalScheduler(cfg config.Scheduler) *fixedIntervalScheduler {
	return &fixedIntervalScheduler{interval: cfg.Interval}
}

func (s *fixedIntervalScheduler) Name() string {
	return "fixed-interval"
}

// Decide 每tick的调度决策
func (s *fixedIntervalScheduler) Decide(tick int32, grid entity.IGridManager) {
	phase := entity.PhaseHorizontalGreen
	if (tick/s.interval)%2 == 1 {
		phase = entity.PhaseVerticalGreen
	}
	for _, i := range grid.Intersections() {
		i.Light().SetPhase(phase)
	}
}
