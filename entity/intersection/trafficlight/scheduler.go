package trafficlight

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

var (
	ErrUnknownStrategy = errors.New("trafficlight: unknown scheduler strategy")
)

// NewScheduler 按名字创建调度策略
// 功能：策略名构成封闭集合，见config.StrategyNames
// 参数：name-策略名，cfg-策略数值参数（已填充默认值）
// 返回：调度策略与错误，未知策略名时返回ErrUnknownStrategy
func NewScheduler(name string, cfg config.Scheduler) (entity.IScheduler, error) {
	switch name {
	case "fixed-interval":
		return newFixedIntervalScheduler(cfg), nil
	case "density":
		return newDensityScheduler(cfg), nil
	case "adaptive":
		return newAdaptiveScheduler(cfg), nil
	case "independent":
		return newIndependentScheduler(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
