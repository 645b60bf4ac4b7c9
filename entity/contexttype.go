package entity

import (
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/clock"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/randengine"
)

type ITaskContext interface {
	Clock() *clock.Clock
	RuntimeConfig() *config.RuntimeConfig
	Generator() *randengine.Engine
	GridManager() IGridManager
	VehicleManager() IVehicleManager
}
