package container

// Queue 先进先出队列
// 功能：保持插入顺序的泛型FIFO队列，用于路口的方向排队
// 说明：支持按谓词批量移除（右转车辆放行），移除后剩余元素保持原有相对顺序
type Queue[T any] struct {
	items []T
}

// Len 队列长度
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// PushBack 入队到队尾
func (q *Queue[T]) PushBack(v T) {
	q.items = append(q.items, v)
}

// Front 获取队首元素
// 返回：队首元素与队列是否非空
func (q *Queue[T]) Front() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// PopFront 移除并返回队首元素
// 返回：队首元素与队列是否非空
func (q *Queue[T]) PopFront() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	v := q.items[0]
	q.items[0] = *new(T)
	q.items = q.items[1:]
	return v, true
}

// RemoveIf 移除所有满足谓词的元素
// 功能：按原有顺序返回被移除的元素，剩余元素原地保持相对顺序
// 算法说明：单趟双指针压缩，时间O(n)，不分配新底层数组
func (q *Queue[T]) RemoveIf(pred func(v T) bool) []T {
	var removed []T
	keep := q.items[:0]
	for _, v := range q.items {
		if pred(v) {
			removed = append(removed, v)
		} else {
			keep = append(keep, v)
		}
	}
	for i := len(keep); i < len(q.items); i++ {
		q.items[i] = *new(T)
	}
	q.items = keep
	return removed
}

// Slice 队列内容的只读副本（队首在前）
func (q *Queue[T]) Slice() []T {
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

// Each 按队首到队尾的顺序遍历
func (q *Queue[T]) Each(f func(v T)) {
	for _, v := range q.items {
		f(v)
	}
}
