package entity

import "fmt"

// Direction 车辆行进方向
// 说明：North为行号减小方向（画面上方），South为行号增大方向，
// East为列号增大方向，West为列号减小方向
type Direction int32

const (
	DirectionNorth Direction = iota
	DirectionSouth
	DirectionEast
	DirectionWest
)

// Directions 固定遍历顺序的方向列表（北、南、东、西）
// 说明：移动裁决与测试均依赖该顺序保证确定性
var Directions = [4]Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest}

func (d Direction) String() string {
	switch d {
	case DirectionNorth:
		return "N"
	case DirectionSouth:
		return "S"
	case DirectionEast:
		return "E"
	case DirectionWest:
		return "W"
	default:
		return fmt.Sprintf("Direction(%d)", int32(d))
	}
}

// Axis 方向所属的轴（方向组）
// 返回：North/South属于AxisVertical，East/West属于AxisHorizontal
func (d Direction) Axis() Axis {
	switch d {
	case DirectionNorth, DirectionSouth:
		return AxisVertical
	default:
		return AxisHorizontal
	}
}

// Axis 方向组，即共享同一信号灯相位的一对相反方向
type Axis int32

const (
	AxisHorizontal Axis = iota // 东西方向组
	AxisVertical               // 南北方向组
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "EW"
	}
	return "NS"
}

// Directions 方向组包含的两个方向（固定顺序）
func (a Axis) Directions() [2]Direction {
	if a == AxisVertical {
		return [2]Direction{DirectionNorth, DirectionSouth}
	}
	return [2]Direction{DirectionEast, DirectionWest}
}

// LightPhase 信号灯相位，任意时刻恰好处于其中之一
type LightPhase int32

const (
	PhaseHorizontalGreen LightPhase = iota // 东西向绿灯
	PhaseVerticalGreen                     // 南北向绿灯
)

func (p LightPhase) String() string {
	if p == PhaseHorizontalGreen {
		return "HorizontalGreen"
	}
	return "VerticalGreen"
}

// GreenAxis 当前相位放行的方向组
func (p LightPhase) GreenAxis() Axis {
	if p == PhaseHorizontalGreen {
		return AxisHorizontal
	}
	return AxisVertical
}

// TurnType 车辆在下一个路口的转向类型
type TurnType int32

const (
	TurnStraight TurnType = iota
	TurnLeft
	TurnRight
)

func (t TurnType) String() string {
	switch t {
	case TurnStraight:
		return "straight"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return fmt.Sprintf("TurnType(%d)", int32(t))
	}
}

// Position 环面网格上的路口坐标（行、列）
// 说明：所有坐标运算均对网格尺寸取模，网格无边界
type Position struct {
	Row int32
	Col int32
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Normalize 将坐标归一化到[0,rows)×[0,cols)范围内
func (p Position) Normalize(rows, cols int32) Position {
	return Position{
		Row: ((p.Row % rows) + rows) % rows,
		Col: ((p.Col % cols) + cols) % cols,
	}
}

// Neighbor 沿指定方向的相邻路口坐标（环面回绕）
func (p Position) Neighbor(d Direction, rows, cols int32) Position {
	switch d {
	case DirectionNorth:
		return Position{Row: p.Row - 1, Col: p.Col}.Normalize(rows, cols)
	case DirectionSouth:
		return Position{Row: p.Row + 1, Col: p.Col}.Normalize(rows, cols)
	case DirectionEast:
		return Position{Row: p.Row, Col: p.Col + 1}.Normalize(rows, cols)
	default:
		return Position{Row: p.Row, Col: p.Col - 1}.Normalize(rows, cols)
	}
}

// NormalizeDelta 环面最短位移分量
// 功能：将朴素坐标差值归一化为绝对值不超过extent/2的回绕最短分量
// 说明：与Pathfinder使用同一回绕约定，extent为该维度的网格尺寸
func NormalizeDelta(delta, extent int32) int32 {
	half := extent / 2
	return ((delta+half)%extent+extent)%extent - half
}

// Delta 从p到q的环面最短位移（行分量、列分量）
func (p Position) Delta(q Position, rows, cols int32) (dr, dc int32) {
	return NormalizeDelta(q.Row-p.Row, rows), NormalizeDelta(q.Col-p.Col, cols)
}

// IsAdjacent 判断q是否为p的四邻域相邻路口（环面回绕计）
func (p Position) IsAdjacent(q Position, rows, cols int32) bool {
	dr, dc := p.Delta(q, rows, cols)
	return dr*dr+dc*dc == 1
}

// DirectionTo 从p指向相邻路口q的行进方向
// 返回：方向与是否相邻；p==q或不相邻时第二个返回值为false
func (p Position) DirectionTo(q Position, rows, cols int32) (Direction, bool) {
	dr, dc := p.Delta(q, rows, cols)
	switch {
	case dr == -1 && dc == 0:
		return DirectionNorth, true
	case dr == 1 && dc == 0:
		return DirectionSouth, true
	case dr == 0 && dc == 1:
		return DirectionEast, true
	case dr == 0 && dc == -1:
		return DirectionWest, true
	default:
		return DirectionNorth, false
	}
}

// ClassifyTurn 由相邻两段行进向量判断转向类型
// 功能：计算两段环面归一化位移向量的叉积符号，正为右转、负为左转、零为直行
// 参数：(dr1,dc1)为当前段向量，(dr2,dc2)为下一段向量
// 约定：行号向下增大的坐标系中 cross = dc1*dr2 - dr1*dc2；
// 例如向北行驶(-1,0)后转向东(0,1)时cross=1，为右转
func ClassifyTurn(dr1, dc1, dr2, dc2 int32) TurnType {
	cross := dc1*dr2 - dr1*dc2
	switch {
	case cross > 0:
		return TurnRight
	case cross < 0:
		return TurnLeft
	default:
		return TurnStraight
	}
}
