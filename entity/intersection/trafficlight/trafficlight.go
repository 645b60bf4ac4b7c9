// 路口信号灯与信号灯调度策略
//
// 信号灯本身只是一个两相位状态机（东西绿/南北绿），自身从不切换；
// 切换时机完全由调度策略决定，策略每tick读取全网路口队列状态后
// 对需要切换的信号灯调用Switch。
package trafficlight

import (
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
)

// TrafficLight 两相位信号灯状态机
// 说明：任意时刻恰好处于一个相位，切换为原子操作，不建模黄灯；
// cycle为距上次切换经过的tick数
type TrafficLight struct {
	phase entity.LightPhase
	cycle int32
}

// New 创建信号灯
// 参数：initial-初始相位
func New(initial entity.LightPhase) *TrafficLight {
	return &TrafficLight{phase: initial}
}

// Phase 当前相位
func (l *TrafficLight) Phase() entity.LightPhase {
	return l.phase
}

// Cycle 距上次切换经过的tick数
func (l *TrafficLight) Cycle() int32 {
	return l.cycle
}

// Tick 相位计数器+1，每tick在调度决策前调用一次
func (l *TrafficLight) Tick() {
	l.cycle++
}

// Switch 无条件翻转相位并将计数器清零
// 说明：仅由调度策略调用，信号灯自身从不切换
func (l *TrafficLight) Switch() {
	if l.phase == entity.PhaseHorizontalGreen {
		l.phase = entity.PhaseVerticalGreen
	} else {
		l.phase = entity.PhaseHorizontalGreen
	}
	l.cycle = 0
}

// SetPhase 设定目标相位
// 说明：与当前相位不同时等价于Switch，相同时为空操作（计数器保持）
func (l *TrafficLight) SetPhase(phase entity.LightPhase) {
	if l.phase != phase {
		l.Switch()
	}
}

// ResetCycle 计数器清零
// 说明：调度策略热切换时对全网信号灯调用，使新策略从零开始计时
func (l *TrafficLight) ResetCycle() {
	l.cycle = 0
}
