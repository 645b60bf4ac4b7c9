package vehicle

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
)

// Vehicle 车辆实体
// 功能：持有位置、规划路径、转向分类与等待时长账本
// 说明：队列成员关系由路口网格独占管理，车辆自身不反向操作网格；
// 路径满足path[0]==创建位置、path[len-1]==目的地、相邻路径点环面相邻
type Vehicle struct {
	id          int32
	rows, cols  int32
	pos         entity.Position
	destination entity.Position
	path        []entity.Position
	pathIndex   int

	waiting    map[entity.Position]int32 // 按坐标累计的等待时长
	trajectory []entity.Position         // 实际经过的坐标序列
	distance   int32                     // 累计移动距离
	steps      int32                     // 累计经过的tick数
	moved      bool                      // 本tick是否已移动
}

// New 创建车辆
// 功能：以给定规划路径创建车辆，起点为path[0]，终点为path[len-1]
// 参数：id-车辆ID，path-规划路径，rows/cols-网格尺寸
// 说明：路径为空或相邻路径点不满足环面相邻时为内部不变量破坏，直接panic
func New(id int32, path []entity.Position, rows, cols int32) *Vehicle {
	if len(path) == 0 {
		log.Panicf("vehicle %d: empty path", id)
	}
	for i := range path {
		path[i] = path[i].Normalize(rows, cols)
		if i > 0 && !path[i-1].IsAdjacent(path[i], rows, cols) {
			log.Panicf("vehicle %d: path entries %v and %v are not adjacent", id, path[i-1], path[i])
		}
	}
	return &Vehicle{
		id:          id,
		rows:        rows,
		cols:        cols,
		pos:         path[0],
		destination: path[len(path)-1],
		path:        path,
		waiting:     make(map[entity.Position]int32),
		trajectory:  []entity.Position{path[0]},
	}
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle{ID:%d, Pos:%v, Dest:%v}", v.id, v.pos, v.destination)
}

// ID 获取车辆ID
func (v *Vehicle) ID() int32 {
	return v.id
}

// Position 获取当前所在路口坐标
func (v *Vehicle) Position() entity.Position {
	return v.pos
}

// Destination 获取目的地坐标
func (v *Vehicle) Destination() entity.Position {
	return v.destination
}

// Path 获取规划路径
func (v *Vehicle) Path() []entity.Position {
	return v.path
}

// Trajectory 获取实际经过的坐标序列
func (v *Vehicle) Trajectory() []entity.Position {
	return v.trajectory
}

// HasArrived 当前坐标是否等于目的地
func (v *Vehicle) HasArrived() bool {
	return v.pos == v.destination
}

// NextPosition 路径中当前索引之后的下一个坐标
// 说明：已到达目的地时返回当前坐标（幂等）
func (v *Vehicle) NextPosition() entity.Position {
	if v.pathIndex+1 < len(v.path) {
		return v.path[v.pathIndex+1]
	}
	return v.pos
}

// NextDirection 指向下一个路径点的行进方向
// 功能：按环面最短位移确定基本方向（与Pathfinder使用同一回绕约定）
// 返回：方向与是否有效，已到达目的地时第二个返回值为false
func (v *Vehicle) NextDirection() (entity.Direction, bool) {
	if v.pathIndex+1 >= len(v.path) {
		return entity.DirectionNorth, false
	}
	return v.pos.DirectionTo(v.path[v.pathIndex+1], v.rows, v.cols)
}

// TurnType 转向分类
// 功能：取当前索引之后的两个路径点，计算两段行进向量的叉积符号
// 返回：正为右转、负为左转、零为直行；剩余路径点不足两个时为直行
// 算法说明：行进向量为环面归一化位移，约定见entity.ClassifyTurn
func (v *Vehicle) TurnType() entity.TurnType {
	if v.pathIndex+2 >= len(v.path) {
		return entity.TurnStraight
	}
	next := v.path[v.pathIndex+1]
	nextNext := v.path[v.pathIndex+2]
	dr1, dc1 := v.pos.Delta(next, v.rows, v.cols)
	dr2, dc2 := next.Delta(nextNext, v.rows, v.cols)
	return entity.ClassifyTurn(dr1, dc1, dr2, dc2)
}

// Advance 前进到路径中的下一个坐标
// 功能：路径索引+1并更新当前坐标与累计距离
// 说明：已到达目的地时为空操作，重复调用不改变任何状态
func (v *Vehicle) Advance() {
	if v.pathIndex+1 >= len(v.path) {
		return
	}
	v.pathIndex++
	v.pos = v.path[v.pathIndex]
	v.distance++
	v.trajectory = append(v.trajectory, v.pos)
}

// RecordWait 在当前坐标上累计一次等待
// 说明：每tick对所有未移动的在途车辆调用一次
func (v *Vehicle) RecordWait() {
	v.waiting[v.pos]++
}

// WaitingTime 当前坐标上的累计等待时长
func (v *Vehicle) WaitingTime() int32 {
	return v.waiting[v.pos]
}

// TotalWaitingTime 全部坐标上的累计等待时长
func (v *Vehicle) TotalWaitingTime() int32 {
	return lo.Sum(lo.Values(v.waiting))
}

// IncrementSteps 累计一个经过的tick
func (v *Vehicle) IncrementSteps() {
	v.steps++
}

// DistanceTraveled 累计移动距离
func (v *Vehicle) DistanceTraveled() int32 {
	return v.distance
}

// Steps 累计经过的tick数
func (v *Vehicle) Steps() int32 {
	return v.steps
}

// AverageSpeed 平均速度
// 返回：累计距离除以累计tick数，无tick时为0（吞吐指标，不参与控制决策）
func (v *Vehicle) AverageSpeed() float64 {
	if v.steps == 0 {
		return 0
	}
	return float64(v.distance) / float64(v.steps)
}

// MarkMoved 标记本tick已移动
func (v *Vehicle) MarkMoved() {
	v.moved = true
}

// ConsumeMoved 读取并清除本tick移动标记
func (v *Vehicle) ConsumeMoved() bool {
	moved := v.moved
	v.moved = false
	return moved
}
