package config

import (
	"fmt"

	"github.com/samber/lo"
)

// 各策略数值参数的默认值
const (
	DefaultInterval    = 10
	DefaultMinGreen    = 5
	DefaultMaxGreen    = 20
	DefaultSwitchRatio = 1.5
	DefaultScoreRatio  = 1.3
	DefaultWaitWeight  = 1.5
	DefaultTargetScale = 10
	DefaultOutInterval = 10
)

// StrategyNames 可用调度策略名（封闭集合）
var StrategyNames = []string{"fixed-interval", "density", "adaptive", "independent"}

// RuntimeConfig 运行时配置
// 功能：存储校验并填充默认值后的配置，供各管理器在构造期读取
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：校验配置合法性并填充默认值
// 返回：运行时配置指针与校验错误，配置非法时必须在构造期失败
// 算法说明：
// 1. 网格维度必须为正（环面网格退化检查）
// 2. 生成概率必须落在[0,1]内
// 3. 策略名必须属于封闭集合，绿灯时长边界必须有序为正
// 4. 未设置的数值参数填充默认值
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	if config.Grid.Rows <= 0 || config.Grid.Cols <= 0 {
		return nil, fmt.Errorf("config: grid dimensions %dx%d must be positive", config.Grid.Rows, config.Grid.Cols)
	}
	if p := config.Vehicle.SpawnProbability; p < 0 || p > 1 {
		return nil, fmt.Errorf("config: spawn probability %f outside [0,1]", p)
	}
	if config.Vehicle.InitialCount < 0 {
		return nil, fmt.Errorf("config: initial vehicle count %d must be non-negative", config.Vehicle.InitialCount)
	}
	if config.Control.Step.Total < 0 {
		return nil, fmt.Errorf("config: total steps %d must be non-negative", config.Control.Step.Total)
	}

	s := &config.Scheduler
	if s.Name == "" {
		s.Name = StrategyNames[0]
	}
	if !lo.Contains(StrategyNames, s.Name) {
		return nil, fmt.Errorf("config: unknown scheduler name %q, must be one of %v", s.Name, StrategyNames)
	}
	if s.Interval == 0 {
		s.Interval = DefaultInterval
	}
	if s.MinGreen == 0 {
		s.MinGreen = DefaultMinGreen
	}
	if s.MaxGreen == 0 {
		s.MaxGreen = DefaultMaxGreen
	}
	if s.SwitchRatio == 0 {
		s.SwitchRatio = DefaultSwitchRatio
	}
	if s.ScoreRatio == 0 {
		s.ScoreRatio = DefaultScoreRatio
	}
	if s.WaitWeight == 0 {
		s.WaitWeight = DefaultWaitWeight
	}
	if s.TargetScale == 0 {
		s.TargetScale = DefaultTargetScale
	}
	if s.Interval <= 0 {
		return nil, fmt.Errorf("config: scheduler interval %d must be positive", s.Interval)
	}
	if s.MinGreen <= 0 || s.MaxGreen < s.MinGreen {
		return nil, fmt.Errorf("config: green time bounds [%d, %d] must satisfy 0 < min <= max", s.MinGreen, s.MaxGreen)
	}
	if s.SwitchRatio <= 0 || s.ScoreRatio <= 0 || s.WaitWeight < 0 || s.TargetScale <= 0 {
		return nil, fmt.Errorf("config: scheduler ratios must be positive: %+v", *s)
	}

	if config.Output.URI != "" {
		if config.Output.DB == "" || config.Output.Col == "" {
			return nil, fmt.Errorf("config: output db and col must be set when uri is set")
		}
		if config.Output.Interval == 0 {
			config.Output.Interval = DefaultOutInterval
		}
		if config.Output.Interval < 0 {
			return nil, fmt.Errorf("config: output interval %d must be positive", config.Output.Interval)
		}
	}

	return &RuntimeConfig{All: config, C: config.Control}, nil
}
