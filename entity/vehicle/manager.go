package vehicle

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/vehicle/route"
	"gonum.org/v1/gonum/stat"
)

// 同一tick内重抽目的地的次数上限，超过后退化为原地single-element路径
const maxDestinationDraws = 16

// Manager 车辆管理器
// 功能：持有车辆名册，负责车辆的生成、路径规划、老化与销毁
// 说明：名册按创建顺序（ID升序）维护，保证每tick遍历顺序确定
type Manager struct {
	ctx entity.ITaskContext

	router   *route.Router
	data     map[int32]*Vehicle
	vehicles []*Vehicle // 在途车辆，ID升序

	nextID       int32
	totalArrived int
}

// NewManager 创建车辆管理器实例
func NewManager() *Manager {
	return &Manager{
		data:     make(map[int32]*Vehicle),
		vehicles: make([]*Vehicle, 0),
	}
}

// Init 初始化车辆管理器
// 功能：保存任务上下文并按配置构造路径规划器
// 说明：网格维度已在配置校验中检查，此处失败视为缺陷
func (m *Manager) Init(ctx entity.ITaskContext) {
	m.ctx = ctx
	g := ctx.RuntimeConfig().All.Grid
	router, err := route.New(g.Rows, g.Cols)
	if err != nil {
		log.Panicf("init router error: %v", err)
	}
	m.router = router
}

// AddVehicle 以给定起终点创建车辆并入网
// 功能：规划路径、创建车辆、加入名册并入队到起点路口
// 返回：创建的车辆；路径规划失败时返回错误（当前路网下仅维度退化可能触发）
// 说明：start==destination时车辆创建即到达，不入队，下一次Despawn时移除
func (m *Manager) AddVehicle(start, destination entity.Position) (entity.IVehicle, error) {
	path := m.router.ShortestPath(start, destination)
	v := New(m.nextID, path, m.router.Rows(), m.router.Cols())
	m.nextID++
	m.data[v.ID()] = v
	m.vehicles = append(m.vehicles, v)
	if !v.HasArrived() {
		m.ctx.GridManager().AddVehicle(v)
	}
	return v, nil
}

// SpawnInitial 按配置投放初始车辆
// 功能：以均匀随机的起终点创建initial_count辆车
func (m *Manager) SpawnInitial() {
	count := m.ctx.RuntimeConfig().All.Vehicle.InitialCount
	for i := int32(0); i < count; i++ {
		m.spawnAt(m.randomPosition())
	}
	log.Debugf("spawned %d initial vehicles", count)
}

// SpawnTick 每tick的车辆生成
// 功能：按行优先顺序遍历所有路口，每个路口独立以概率p生成一辆新车
// 说明：遍历顺序与随机数消耗顺序固定，保证相同种子完整复现
func (m *Manager) SpawnTick() {
	p := m.ctx.RuntimeConfig().All.Vehicle.SpawnProbability
	if p <= 0 {
		return
	}
	engine := m.ctx.Generator()
	for _, i := range m.ctx.GridManager().Intersections() {
		if engine.PTrue(p) {
			m.spawnAt(i.Position())
		}
	}
}

// spawnAt 在指定路口生成一辆随机终点的车辆
// 算法说明：
// 1. 均匀重抽终点直到与起点不同（次数有界）
// 2. 重抽耗尽（例如1x1网格）时退化为原地路径，车辆创建即到达
func (m *Manager) spawnAt(start entity.Position) {
	destination := start
	for i := 0; i < maxDestinationDraws; i++ {
		destination = m.randomPosition()
		if destination != start {
			break
		}
	}
	if _, err := m.AddVehicle(start, destination); err != nil {
		log.Errorf("spawn at %v failed: %v", start, err)
	}
}

func (m *Manager) randomPosition() entity.Position {
	engine := m.ctx.Generator()
	return entity.Position{
		Row: int32(engine.Intn(int(m.router.Rows()))),
		Col: int32(engine.Intn(int(m.router.Cols()))),
	}
}

// Age 老化在途车辆
// 功能：所有在途车辆累计一个tick；本tick未移动且未到达的车辆
// 在其当前坐标上累计一次等待
func (m *Manager) Age() {
	for _, v := range m.vehicles {
		v.IncrementSteps()
		if !v.ConsumeMoved() && !v.HasArrived() {
			v.RecordWait()
		}
	}
}

// Despawn 移除已到达目的地的车辆
// 功能：将到达车辆移出名册并累计到达计数
// 返回：本次移除的车辆数
// 说明：到达车辆在移动裁决中已不再入队，此处只清理名册
func (m *Manager) Despawn() int {
	before := len(m.vehicles)
	m.vehicles = lo.Filter(m.vehicles, func(v *Vehicle, _ int) bool {
		if v.HasArrived() {
			delete(m.data, v.ID())
			return false
		}
		return true
	})
	removed := before - len(m.vehicles)
	m.totalArrived += removed
	return removed
}

// Count 在途车辆数
func (m *Manager) Count() int {
	return len(m.vehicles)
}

// TotalArrived 累计到达车辆数
func (m *Manager) TotalArrived() int {
	return m.totalArrived
}

// Vehicles 在途车辆（ID升序）
func (m *Manager) Vehicles() []entity.IVehicle {
	return lo.Map(m.vehicles, func(v *Vehicle, _ int) entity.IVehicle {
		return v
	})
}

// AverageSpeed 在途车辆的平均速度均值
// 返回：无在途车辆时为0
func (m *Manager) AverageSpeed() float64 {
	if len(m.vehicles) == 0 {
		return 0
	}
	speeds := lo.Map(m.vehicles, func(v *Vehicle, _ int) float64 {
		return v.AverageSpeed()
	})
	return stat.Mean(speeds, nil)
}
