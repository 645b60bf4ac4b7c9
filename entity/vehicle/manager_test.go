package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/clock"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/intersection"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/randengine"
)

// testContext 车辆管理器测试用的任务上下文，网格为真实实现
type testContext struct {
	rc       *config.RuntimeConfig
	engine   *randengine.Engine
	grid     entity.IGridManager
	vehicles entity.IVehicleManager
}

func (c *testContext) Clock() *clock.Clock                    { return nil }
func (c *testContext) RuntimeConfig() *config.RuntimeConfig   { return c.rc }
func (c *testContext) Generator() *randengine.Engine          { return c.engine }
func (c *testContext) GridManager() entity.IGridManager       { return c.grid }
func (c *testContext) VehicleManager() entity.IVehicleManager { return c.vehicles }

func newManagers(t *testing.T, c config.Config, seed uint64) (*vehicle.Manager, *intersection.Manager) {
	t.Helper()
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	gm := intersection.NewManager()
	vm := vehicle.NewManager()
	ctx := &testContext{rc: rc, engine: randengine.New(seed), grid: gm, vehicles: vm}
	gm.Init(ctx)
	vm.Init(ctx)
	return vm, gm
}

func gridConfig(rows, cols int32) config.Config {
	return config.Config{Grid: config.Grid{Rows: rows, Cols: cols}}
}

func TestAddVehicle(t *testing.T) {
	vm, gm := newManagers(t, gridConfig(10, 10), 42)

	v, err := vm.AddVehicle(pos(0, 0), pos(3, 4))
	require.NoError(t, err)
	assert.Equal(t, int32(0), v.ID())
	assert.Equal(t, pos(0, 0), v.Position())
	assert.Equal(t, pos(3, 4), v.Destination())
	assert.Equal(t, 1, vm.Count())
	// 入网即入队
	assert.Equal(t, 1, gm.TotalQueued())

	// ID单调递增
	w, err := vm.AddVehicle(pos(5, 5), pos(5, 6))
	require.NoError(t, err)
	assert.Equal(t, int32(1), w.ID())
}

func TestAddVehicleAlreadyArrived(t *testing.T) {
	vm, gm := newManagers(t, gridConfig(10, 10), 42)

	// 起终点相同的车辆创建即到达，不入队
	v, err := vm.AddVehicle(pos(2, 2), pos(2, 2))
	require.NoError(t, err)
	assert.True(t, v.HasArrived())
	assert.Equal(t, 0, gm.TotalQueued())
	assert.Equal(t, 1, vm.Count())

	// Despawn在本tick结尾移除
	assert.Equal(t, 1, vm.Despawn())
	assert.Equal(t, 0, vm.Count())
	assert.Equal(t, 1, vm.TotalArrived())
}

func TestSpawnInitial(t *testing.T) {
	c := gridConfig(10, 10)
	c.Vehicle.InitialCount = 20
	vm, gm := newManagers(t, c, 42)

	vm.SpawnInitial()
	assert.Equal(t, 20, vm.Count())
	// 终点重抽保证起终点不同，全部车辆入队
	assert.Equal(t, 20, gm.TotalQueued())

	for _, v := range vm.Vehicles() {
		p := v.Path()
		assert.Equal(t, v.Position(), p[0])
		assert.Equal(t, v.Destination(), p[len(p)-1])
	}
}

func TestSpawnInitialDeterministic(t *testing.T) {
	c := gridConfig(10, 10)
	c.Vehicle.InitialCount = 10

	vm1, _ := newManagers(t, c, 7)
	vm1.SpawnInitial()
	vm2, _ := newManagers(t, c, 7)
	vm2.SpawnInitial()

	a, b := vm1.Vehicles(), vm2.Vehicles()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Path(), b[i].Path())
	}
}

func TestSpawnTick(t *testing.T) {
	c := gridConfig(5, 5)
	c.Vehicle.SpawnProbability = 1.0
	vm, _ := newManagers(t, c, 42)

	// p=1时每个路口必然生成一辆
	vm.SpawnTick()
	assert.Equal(t, 25, vm.Count())

	c.Vehicle.SpawnProbability = 0
	vm, _ = newManagers(t, c, 42)
	vm.SpawnTick()
	assert.Equal(t, 0, vm.Count())
}

func TestSpawnDegenerateGrid(t *testing.T) {
	// 1x1网格无法抽出不同终点，车辆退化为原地路径
	c := gridConfig(1, 1)
	c.Vehicle.InitialCount = 3
	vm, gm := newManagers(t, c, 42)
	vm.SpawnInitial()
	assert.Equal(t, 3, vm.Count())
	assert.Equal(t, 0, gm.TotalQueued())
	assert.Equal(t, 3, vm.Despawn())
}

func TestAge(t *testing.T) {
	vm, _ := newManagers(t, gridConfig(10, 10), 42)
	v, err := vm.AddVehicle(pos(0, 0), pos(0, 2))
	require.NoError(t, err)

	// 未移动的在途车辆累计等待
	vm.Age()
	assert.Equal(t, int32(1), v.Steps())
	assert.Equal(t, int32(1), v.WaitingTime())

	// 本tick已移动的车辆不计等待，移动标记被消费
	v.MarkMoved()
	vm.Age()
	assert.Equal(t, int32(2), v.Steps())
	assert.Equal(t, int32(1), v.WaitingTime())
	vm.Age()
	assert.Equal(t, int32(2), v.WaitingTime())
}

func TestDespawn(t *testing.T) {
	vm, _ := newManagers(t, gridConfig(10, 10), 42)
	a, err := vm.AddVehicle(pos(0, 0), pos(0, 1))
	require.NoError(t, err)
	_, err = vm.AddVehicle(pos(1, 0), pos(1, 2))
	require.NoError(t, err)

	assert.Equal(t, 0, vm.Despawn())

	a.Advance()
	require.True(t, a.HasArrived())
	assert.Equal(t, 1, vm.Despawn())
	assert.Equal(t, 1, vm.Count())
	assert.Equal(t, 1, vm.TotalArrived())
	// 名册保持ID升序
	assert.Equal(t, int32(1), vm.Vehicles()[0].ID())
}

func TestManagerAverageSpeed(t *testing.T) {
	vm, _ := newManagers(t, gridConfig(10, 10), 42)
	assert.Equal(t, float64(0), vm.AverageSpeed())

	a, err := vm.AddVehicle(pos(0, 0), pos(0, 2))
	require.NoError(t, err)
	b, err := vm.AddVehicle(pos(1, 0), pos(1, 2))
	require.NoError(t, err)

	// a移动1步/2tick=0.5，b未移动为0，均值0.25
	a.Advance()
	a.IncrementSteps()
	a.IncrementSteps()
	b.IncrementSteps()
	b.IncrementSteps()
	assert.InDelta(t, 0.25, vm.AverageSpeed(), 1e-9)
}
