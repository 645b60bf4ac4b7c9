package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/intersection/trafficlight"
)

func TestTrafficLightSwitch(t *testing.T) {
	l := trafficlight.New(entity.PhaseHorizontalGreen)
	assert.Equal(t, entity.PhaseHorizontalGreen, l.Phase())
	assert.Equal(t, int32(0), l.Cycle())

	l.Tick()
	l.Tick()
	assert.Equal(t, int32(2), l.Cycle())

	l.Switch()
	assert.Equal(t, entity.PhaseVerticalGreen, l.Phase())
	assert.Equal(t, int32(0), l.Cycle())

	l.Switch()
	assert.Equal(t, entity.PhaseHorizontalGreen, l.Phase())
}

func TestTrafficLightSetPhase(t *testing.T) {
	l := trafficlight.New(entity.PhaseHorizontalGreen)
	l.Tick()
	l.Tick()

	// 相同相位为空操作，计数器保持
	l.SetPhase(entity.PhaseHorizontalGreen)
	assert.Equal(t, entity.PhaseHorizontalGreen, l.Phase())
	assert.Equal(t, int32(2), l.Cycle())

	// 不同相位等价于Switch
	l.SetPhase(entity.PhaseVerticalGreen)
	assert.Equal(t, entity.PhaseVerticalGreen, l.Phase())
	assert.Equal(t, int32(0), l.Cycle())
}

func TestTrafficLightResetCycle(t *testing.T) {
	l := trafficlight.New(entity.PhaseVerticalGreen)
	l.Tick()
	l.Tick()
	l.ResetCycle()
	assert.Equal(t, int32(0), l.Cycle())
	assert.Equal(t, entity.PhaseVerticalGreen, l.Phase())
}
