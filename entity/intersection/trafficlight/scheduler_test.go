package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/intersection/trafficlight"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

// fakeIntersection 调度策略测试用的路口桩
// 说明：队列状态直接由测试设定，信号灯为真实状态机
type fakeIntersection struct {
	pos   entity.Position
	light *trafficlight.TrafficLight
	count map[entity.Axis]int
	wait  map[entity.Axis]int32
}

func newFakeIntersection(initial entity.LightPhase) *fakeIntersection {
	return &fakeIntersection{
		light: trafficlight.New(initial),
		count: make(map[entity.Axis]int),
		wait:  make(map[entity.Axis]int32),
	}
}

func (f *fakeIntersection) Position() entity.Position      { return f.pos }
func (f *fakeIntersection) Light() entity.ITrafficLight    { return f.light }
func (f *fakeIntersection) QueueLength(entity.Direction) int { return 0 }
func (f *fakeIntersection) AxisCount(a entity.Axis) int    { return f.count[a] }
func (f *fakeIntersection) AxisWaitingTime(a entity.Axis) int32 { return f.wait[a] }
func (f *fakeIntersection) VehiclesFrom(entity.Direction) []entity.IVehicle { return nil }

// fakeGrid 调度策略测试用的网格桩，仅Intersections参与决策
type fakeGrid struct {
	is []entity.IIntersection
}

func (g *fakeGrid) Init(entity.ITaskContext)                 {}
func (g *fakeGrid) Rows() int32                              { return 1 }
func (g *fakeGrid) Cols() int32                              { return int32(len(g.is)) }
func (g *fakeGrid) Get(entity.Position) entity.IIntersection { return g.is[0] }
func (g *fakeGrid) Intersections() []entity.IIntersection    { return g.is }
func (g *fakeGrid) AddVehicle(entity.IVehicle)               {}
func (g *fakeGrid) TickLights() {
	for _, i := range g.is {
		i.Light().Tick()
	}
}
func (g *fakeGrid) ResetLightCycles() {
	for _, i := range g.is {
		i.Light().ResetCycle()
	}
}
func (g *fakeGrid) ResolveMovement() {}
func (g *fakeGrid) TotalQueued() int { return 0 }

func schedulerConfig() config.Scheduler {
	return config.Scheduler{
		Interval:    config.DefaultInterval,
		MinGreen:    config.DefaultMinGreen,
		MaxGreen:    config.DefaultMaxGreen,
		SwitchRatio: config.DefaultSwitchRatio,
		ScoreRatio:  config.DefaultScoreRatio,
		WaitWeight:  config.DefaultWaitWeight,
		TargetScale: config.DefaultTargetScale,
	}
}

func TestNewSchedulerUnknownStrategy(t *testing.T) {
	_, err := trafficlight.NewScheduler("round-robin", schedulerConfig())
	assert.ErrorIs(t, err, trafficlight.ErrUnknownStrategy)
}

func TestNewSchedulerNames(t *testing.T) {
	for _, name := range config.StrategyNames {
		s, err := trafficlight.NewScheduler(name, schedulerConfig())
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
}

func TestFixedIntervalScheduler(t *testing.T) {
	cfg := schedulerConfig()
	cfg.Interval = 3
	s, err := trafficlight.NewScheduler("fixed-interval", cfg)
	require.NoError(t, err)

	a := newFakeIntersection(entity.PhaseHorizontalGreen)
	b := newFakeIntersection(entity.PhaseVerticalGreen)
	grid := &fakeGrid{is: []entity.IIntersection{a, b}}

	// 全网锁步：相位只取决于tick，与初始相位无关
	for tick := int32(0); tick < 12; tick++ {
		s.Decide(tick, grid)
		want := entity.PhaseHorizontalGreen
		if (tick/3)%2 == 1 {
			want = entity.PhaseVerticalGreen
		}
		assert.Equal(t, want, a.light.Phase(), "tick %d", tick)
		assert.Equal(t, want, b.light.Phase(), "tick %d", tick)
	}
}

func TestDensitySchedulerRespectsGreenBounds(t *testing.T) {
	cfg := schedulerConfig()
	cfg.MinGreen = 5
	cfg.MaxGreen = 20
	cfg.SwitchRatio = 1.5
	s, err := trafficlight.NewScheduler("density", cfg)
	require.NoError(t, err)

	i := newFakeIntersection(entity.PhaseHorizontalGreen)
	grid := &fakeGrid{is: []entity.IIntersection{i}}

	// 对向严重失衡，但minGreen之前绝不切换
	i.count[entity.AxisVertical] = 100
	i.count[entity.AxisHorizontal] = 0
	switched := int32(-1)
	for tick := int32(0); tick < 30 && switched < 0; tick++ {
		grid.TickLights()
		s.Decide(tick, grid)
		if i.light.Phase() == entity.PhaseVerticalGreen {
			switched = i.light.Cycle()
			assert.GreaterOrEqual(t, tick+1, cfg.MinGreen)
		}
	}
	assert.NotEqual(t, int32(-1), switched, "scheduler never switched")
}

func TestDensitySchedulerForcedSwitchAtMaxGreen(t *testing.T) {
	cfg := schedulerConfig()
	cfg.MinGreen = 5
	cfg.MaxGreen = 20
	s, err := trafficlight.NewScheduler("density", cfg)
	require.NoError(t, err)

	i := newFakeIntersection(entity.PhaseHorizontalGreen)
	grid := &fakeGrid{is: []entity.IIntersection{i}}

	// 两个方向组全零，唯一切换来源是maxGreen强制切换
	ticks := int32(0)
	for i.light.Phase() == entity.PhaseHorizontalGreen {
		grid.TickLights()
		s.Decide(ticks, grid)
		ticks++
		require.LessOrEqual(t, ticks, int32(25))
	}
	assert.Equal(t, cfg.MaxGreen, ticks)
}

func TestDensitySchedulerSwitchRatio(t *testing.T) {
	cfg := schedulerConfig()
	cfg.MinGreen = 2
	cfg.MaxGreen = 50
	cfg.SwitchRatio = 1.5
	s, err := trafficlight.NewScheduler("density", cfg)
	require.NoError(t, err)

	i := newFakeIntersection(entity.PhaseHorizontalGreen)
	grid := &fakeGrid{is: []entity.IIntersection{i}}
	for k := 0; k < 3; k++ {
		grid.TickLights()
	}

	// 恰好等于ratio倍时不切换（严格大于）
	i.count[entity.AxisHorizontal] = 4
	i.count[entity.AxisVertical] = 6
	s.Decide(3, grid)
	assert.Equal(t, entity.PhaseHorizontalGreen, i.light.Phase())

	// 超过ratio倍时切换
	i.count[entity.AxisVertical] = 7
	s.Decide(4, grid)
	assert.Equal(t, entity.PhaseVerticalGreen, i.light.Phase())
	assert.Equal(t, int32(0), i.light.Cycle())
}

func TestAdaptiveSchedulerWeighsWaitingTime(t *testing.T) {
	cfg := schedulerConfig()
	cfg.MinGreen = 2
	cfg.MaxGreen = 50
	cfg.ScoreRatio = 1.3
	cfg.WaitWeight = 1.5
	s, err := trafficlight.NewScheduler("adaptive", cfg)
	require.NoError(t, err)

	i := newFakeIntersection(entity.PhaseHorizontalGreen)
	grid := &fakeGrid{is: []entity.IIntersection{i}}
	for k := 0; k < 3; k++ {
		grid.TickLights()
	}

	// 车辆数相同，纯车辆数不足以触发切换
	i.count[entity.AxisHorizontal] = 3
	i.count[entity.AxisVertical] = 3
	s.Decide(3, grid)
	assert.Equal(t, entity.PhaseHorizontalGreen, i.light.Phase())

	// 对向等待时长大幅领先时评分超过阈值触发切换
	// score(V) = 3 + 1.5*10 = 18 > (3 + 0)*1.3
	i.wait[entity.AxisVertical] = 10
	s.Decide(4, grid)
	assert.Equal(t, entity.PhaseVerticalGreen, i.light.Phase())
}

func TestIndependentSchedulerDataDependentTarget(t *testing.T) {
	cfg := schedulerConfig()
	cfg.MinGreen = 5
	cfg.MaxGreen = 20
	cfg.TargetScale = 10
	s, err := trafficlight.NewScheduler("independent", cfg)
	require.NoError(t, err)

	// 当前方向组空、对向积压：目标时长取下界minGreen
	i := newFakeIntersection(entity.PhaseHorizontalGreen)
	i.count[entity.AxisHorizontal] = 0
	i.count[entity.AxisVertical] = 9
	grid := &fakeGrid{is: []entity.IIntersection{i}}
	ticks := int32(0)
	for i.light.Phase() == entity.PhaseHorizontalGreen {
		grid.TickLights()
		s.Decide(ticks, grid)
		ticks++
		require.LessOrEqual(t, ticks, int32(25))
	}
	assert.Equal(t, cfg.MinGreen, ticks)

	// 当前方向组繁忙、对向空：目标时长取上界maxGreen
	j := newFakeIntersection(entity.PhaseHorizontalGreen)
	j.count[entity.AxisHorizontal] = 9
	j.count[entity.AxisVertical] = 0
	grid = &fakeGrid{is: []entity.IIntersection{j}}
	ticks = 0
	for j.light.Phase() == entity.PhaseHorizontalGreen {
		grid.TickLights()
		s.Decide(ticks, grid)
		ticks++
		require.LessOrEqual(t, ticks, int32(25))
	}
	assert.Equal(t, cfg.MaxGreen, ticks)
}
