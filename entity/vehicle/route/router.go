// 环面网格上的路径规划
//
// 每一步移动到四邻域路口之一，回绕算作相邻。返回的路径在环面距离意义下
// 步数最短；存在多条最短路径时采用固定的先行后列（row-first）顺序，
// 保证相同输入总是产生相同路径。
// 注：曾评估用gonum的graph+path做Dijkstra（参照既有路网模拟的做法），
// 但其邻接表按map顺序迭代，等长路径的取舍不可复现，违背固定种子完整
// 复现模拟的要求，故路径在此直接构造。
package route

import (
	"fmt"

	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
)

// Router 路径规划器
// 说明：仅持有网格尺寸，规划本身无状态
type Router struct {
	rows int32
	cols int32
}

// New 创建路径规划器
// 返回：规划器与配置错误，网格维度非正时构造失败
func New(rows, cols int32) (*Router, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("route: degenerate grid dimensions %dx%d", rows, cols)
	}
	return &Router{rows: rows, cols: cols}, nil
}

// ShortestPath 计算从start到destination的最短路径
// 功能：返回起点与终点皆含的有序坐标序列，相邻坐标在环面意义下相邻
// 算法说明：
// 1. 起终点坐标按网格尺寸归一化
// 2. 计算环面最短位移(dr,dc)；位移恰为尺寸一半时归一化取负方向
// 3. 先沿行方向走|dr|步，再沿列方向走|dc|步（固定tie-break）
// 4. start==destination时返回单元素路径
func (r *Router) ShortestPath(start, destination entity.Position) []entity.Position {
	start = start.Normalize(r.rows, r.cols)
	destination = destination.Normalize(r.rows, r.cols)

	dr, dc := start.Delta(destination, r.rows, r.cols)
	path := make([]entity.Position, 0, abs(dr)+abs(dc)+1)
	path = append(path, start)

	cur := start
	rowDir := entity.DirectionSouth
	if dr < 0 {
		rowDir = entity.DirectionNorth
	}
	for i := int32(0); i < abs(dr); i++ {
		cur = cur.Neighbor(rowDir, r.rows, r.cols)
		path = append(path, cur)
	}
	colDir := entity.DirectionEast
	if dc < 0 {
		colDir = entity.DirectionWest
	}
	for i := int32(0); i < abs(dc); i++ {
		cur = cur.Neighbor(colDir, r.rows, r.cols)
		path = append(path, cur)
	}
	return path
}

// Rows 网格行数
func (r *Router) Rows() int32 {
	return r.rows
}

// Cols 网格列数
func (r *Router) Cols() int32 {
	return r.cols
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
