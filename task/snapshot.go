package task

import (
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
)

// 对可视化/CLI等外部协作方暴露的只读快照类型。
// 快照为调用时刻状态的拷贝，后续tick不会改变已返回的快照。

// IntersectionState 单路口快照
type IntersectionState struct {
	Position     entity.Position
	Phase        entity.LightPhase
	QueueLengths map[entity.Direction]int
}

// GridSnapshot 全网快照（路口按行优先顺序）
type GridSnapshot struct {
	Tick          int32
	Rows, Cols    int32
	Intersections []IntersectionState
}

// QueuedVehicle 排队车辆的明细条目
type QueuedVehicle struct {
	ID            int32
	WaitingTime   int32
	NextDirection entity.Direction
	TurnType      entity.TurnType
	Trajectory    []entity.Position
}

// IntersectionDetail 单路口逐方向的排队明细
type IntersectionDetail struct {
	Position entity.Position
	Phase    entity.LightPhase
	Queues   map[entity.Direction][]QueuedVehicle
}

// AggregateMetrics 聚合指标
type AggregateMetrics struct {
	Tick           int32
	ActiveVehicles int
	TotalArrived   int
	AverageSpeed   float64
	TotalQueued    int
}

// GridSnapshot 获取全网快照
// 功能：返回每个路口的队列长度与信号灯相位，用于渲染
func (ctx *Context) GridSnapshot() GridSnapshot {
	grid := ctx.gridManager
	snapshot := GridSnapshot{
		Tick:          ctx.clock.Step,
		Rows:          grid.Rows(),
		Cols:          grid.Cols(),
		Intersections: make([]IntersectionState, 0, grid.Rows()*grid.Cols()),
	}
	for _, i := range grid.Intersections() {
		state := IntersectionState{
			Position:     i.Position(),
			Phase:        i.Light().Phase(),
			QueueLengths: make(map[entity.Direction]int, len(entity.Directions)),
		}
		for _, d := range entity.Directions {
			state.QueueLengths[d] = i.QueueLength(d)
		}
		snapshot.Intersections = append(snapshot.Intersections, state)
	}
	return snapshot
}

// IntersectionDetail 获取单路口逐方向的排队明细
// 功能：返回每个方向队列中所有车辆的等待时长、行进方向与转向类型，
// 供下钻界面使用；坐标做环面归一化
func (ctx *Context) IntersectionDetail(pos entity.Position) IntersectionDetail {
	i := ctx.gridManager.Get(pos)
	detail := IntersectionDetail{
		Position: i.Position(),
		Phase:    i.Light().Phase(),
		Queues:   make(map[entity.Direction][]QueuedVehicle, len(entity.Directions)),
	}
	for _, d := range entity.Directions {
		vehicles := i.VehiclesFrom(d)
		entries := make([]QueuedVehicle, 0, len(vehicles))
		for _, v := range vehicles {
			nd, _ := v.NextDirection()
			entries = append(entries, QueuedVehicle{
				ID:            v.ID(),
				WaitingTime:   v.WaitingTime(),
				NextDirection: nd,
				TurnType:      v.TurnType(),
				Trajectory:    v.Trajectory(),
			})
		}
		detail.Queues[d] = entries
	}
	return detail
}

// AggregateMetrics 获取聚合指标
// 功能：返回在途车辆平均速度、在途/到达车辆数与当前tick
func (ctx *Context) AggregateMetrics() AggregateMetrics {
	return AggregateMetrics{
		Tick:           ctx.clock.Step,
		ActiveVehicles: ctx.vehicleManager.Count(),
		TotalArrived:   ctx.vehicleManager.TotalArrived(),
		AverageSpeed:   ctx.vehicleManager.AverageSpeed(),
		TotalQueued:    ctx.gridManager.TotalQueued(),
	}
}
