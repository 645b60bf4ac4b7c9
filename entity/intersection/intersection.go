package intersection

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/intersection/trafficlight"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/container"
)

// Intersection 路口实体
// 功能：持有四个方向队列与一个信号灯，执行单路口的移动裁决
// 说明：队列按方向命名，队列中的车辆即将沿该方向驶出（原始模型的
// add_vehicle约定）；北/南队列构成纵向方向组，东/西队列构成横向方向组。
// 队列成员关系由网格独占修改，车辆只被动更新自身状态
type Intersection struct {
	pos    entity.Position
	light  *trafficlight.TrafficLight
	queues [4]container.Queue[entity.IVehicle] // 按entity.Directions索引
}

func newIntersection(pos entity.Position, initialPhase entity.LightPhase) *Intersection {
	return &Intersection{
		pos:   pos,
		light: trafficlight.New(initialPhase),
	}
}

func (i *Intersection) String() string {
	return fmt.Sprintf("Intersection{Pos:%v, Phase:%v}", i.pos, i.light.Phase())
}

// Position 路口坐标
func (i *Intersection) Position() entity.Position {
	return i.pos
}

// Light 路口信号灯
func (i *Intersection) Light() entity.ITrafficLight {
	return i.light
}

// QueueLength 指定方向排队车辆数
func (i *Intersection) QueueLength(d entity.Direction) int {
	return i.queues[d].Len()
}

// AxisCount 方向组排队车辆总数
func (i *Intersection) AxisCount(a entity.Axis) int {
	ds := a.Directions()
	return i.queues[ds[0]].Len() + i.queues[ds[1]].Len()
}

// AxisWaitingTime 方向组排队车辆在当前坐标的等待时长之和
func (i *Intersection) AxisWaitingTime(a entity.Axis) int32 {
	sum := int32(0)
	for _, d := range a.Directions() {
		i.queues[d].Each(func(v entity.IVehicle) {
			sum += v.WaitingTime()
		})
	}
	return sum
}

// VehiclesFrom 指定方向队列中的车辆（队首在前）
func (i *Intersection) VehiclesFrom(d entity.Direction) []entity.IVehicle {
	return i.queues[d].Slice()
}

// enqueue 将车辆加入指定方向队列（仅由网格管理器调用）
func (i *Intersection) enqueue(v entity.IVehicle, d entity.Direction) {
	i.queues[d].PushBack(v)
}

// resolve 单路口的一tick移动裁决
// 功能：决定本tick从该路口放行哪些车辆
// 参数：perQueueCap-直行/左转放行上限口径，false为每方向组一辆（默认），
// true为每队列一辆
// 返回：已放行（已Advance）的车辆列表，由网格在全网扫描结束后统一入队
// 算法说明：
// 1. 右转放行：四个方向队列（固定北南东西顺序）中所有转向为右转的
//    车辆全部移出并前进，右转不受信号灯约束，且不限于队首
// 2. 直行/左转放行：仅检查当前绿灯方向组两条队列的队首（右转已在
//    上一趟清空，队首必为直行或左转）；默认口径下组内放行一辆即止，
//    组内两条队列按北先于南、东先于西的固定顺序裁决
// 3. 未放行的车辆留在原队列，相对顺序不变
func (i *Intersection) resolve(perQueueCap bool) []entity.IVehicle {
	moved := make([]entity.IVehicle, 0, 4)

	// 右转放行
	for _, d := range entity.Directions {
		removed := i.queues[d].RemoveIf(func(v entity.IVehicle) bool {
			return v.TurnType() == entity.TurnRight
		})
		for _, v := range removed {
			v.Advance()
			v.MarkMoved()
		}
		moved = append(moved, removed...)
	}

	// 直行/左转放行
	for _, d := range i.light.Phase().GreenAxis().Directions() {
		if v, ok := i.queues[d].PopFront(); ok {
			v.Advance()
			v.MarkMoved()
			moved = append(moved, v)
			if !perQueueCap {
				break
			}
		}
	}
	return moved
}

// totalQueued 全部方向排队车辆总数
func (i *Intersection) totalQueued() int {
	return lo.SumBy(entity.Directions[:], func(d entity.Direction) int {
		return i.queues[d].Len()
	})
}
