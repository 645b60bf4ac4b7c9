package intersection

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
)

// Manager 路口网格管理器
// 功能：持有全部路口，是队列成员关系的唯一修改者；执行全网移动裁决
// 说明：路口按行优先顺序存储与遍历，保证裁决顺序与FIFO约定之外
// 不依赖任何车辆插入顺序
type Manager struct {
	ctx entity.ITaskContext

	rows, cols  int32
	perQueueCap bool
	data        []*Intersection // 行优先
}

// NewManager 创建路口网格管理器实例
func NewManager() *Manager {
	return &Manager{data: make([]*Intersection, 0)}
}

// Init 初始化全部路口
// 功能：按配置构建rows×cols个路口，初始相位由随机引擎逐路口抽取
// 说明：抽取按行优先顺序进行，随机数消耗顺序固定
func (m *Manager) Init(ctx entity.ITaskContext) {
	m.ctx = ctx
	g := ctx.RuntimeConfig().All.Grid
	m.rows, m.cols = g.Rows, g.Cols
	m.perQueueCap = ctx.RuntimeConfig().All.Movement.PerQueueCap
	if m.rows <= 0 || m.cols <= 0 {
		log.Panicf("degenerate grid dimensions %dx%d", m.rows, m.cols)
	}

	engine := ctx.Generator()
	m.data = make([]*Intersection, 0, m.rows*m.cols)
	for r := int32(0); r < m.rows; r++ {
		for c := int32(0); c < m.cols; c++ {
			phase := entity.PhaseHorizontalGreen
			if engine.PTrue(0.5) {
				phase = entity.PhaseVerticalGreen
			}
			m.data = append(m.data, newIntersection(entity.Position{Row: r, Col: c}, phase))
		}
	}
}

// Rows 网格行数
func (m *Manager) Rows() int32 {
	return m.rows
}

// Cols 网格列数
func (m *Manager) Cols() int32 {
	return m.cols
}

// Get 根据坐标获取路口
// 说明：坐标先做环面归一化，归一化后必然命中；未命中说明内部
// 不变量已被破坏，直接panic
func (m *Manager) Get(pos entity.Position) entity.IIntersection {
	return m.get(pos)
}

func (m *Manager) get(pos entity.Position) *Intersection {
	pos = pos.Normalize(m.rows, m.cols)
	idx := pos.Row*m.cols + pos.Col
	if idx < 0 || int(idx) >= len(m.data) {
		log.Panicf("position %v out of grid %dx%d", pos, m.rows, m.cols)
	}
	return m.data[idx]
}

// Intersections 行优先顺序的全部路口
func (m *Manager) Intersections() []entity.IIntersection {
	return lo.Map(m.data, func(i *Intersection, _ int) entity.IIntersection {
		return i
	})
}

// AddVehicle 将车辆加入其当前坐标路口的对应方向队列
// 功能：队列方向取车辆的行进方向（指向下一路径点）
// 说明：已到达目的地的车辆不入队；在途车辆必有行进方向，否则panic
func (m *Manager) AddVehicle(v entity.IVehicle) {
	if v.HasArrived() {
		return
	}
	d, ok := v.NextDirection()
	if !ok {
		log.Panicf("vehicle %d at %v has no next direction but has not arrived", v.ID(), v.Position())
	}
	m.get(v.Position()).enqueue(v, d)
}

// TickLights 所有信号灯相位计数器+1
func (m *Manager) TickLights() {
	for _, i := range m.data {
		i.light.Tick()
	}
}

// ResetLightCycles 所有信号灯相位计数器清零
func (m *Manager) ResetLightCycles() {
	for _, i := range m.data {
		i.light.ResetCycle()
	}
}

// ResolveMovement 全网一tick的移动裁决
// 功能：按行优先顺序裁决每个路口，再统一处理跨路口入队
// 算法说明：
// 1. 第一阶段（removal）：逐路口执行resolve，放行车辆立即离开原队列
//    并前进到新坐标，但不立即入队
// 2. 第二阶段（apply）：全网扫描结束后，按放行顺序将未到达的车辆
//    加入新路口的对应方向队列
// 说明：两阶段结构保证同一车辆在一个tick内至多被裁决一次（即便其
// 新路口在扫描顺序中尚未处理），到达目的地的车辆不再入队，
// 由车辆管理器在本tick结尾移出名册
func (m *Manager) ResolveMovement() {
	arrivals := make([]entity.IVehicle, 0)
	for _, i := range m.data {
		arrivals = append(arrivals, i.resolve(m.perQueueCap)...)
	}
	for _, v := range arrivals {
		m.AddVehicle(v)
	}
}

// TotalQueued 全网排队车辆总数
func (m *Manager) TotalQueued() int {
	return lo.SumBy(m.data, func(i *Intersection) int {
		return i.totalQueued()
	})
}
