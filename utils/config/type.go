package config

// Grid 路网网格配置
// 说明：网格为环面结构，行列数即路口数，无边界
type Grid struct {
	Rows int32 `yaml:"rows"` // 行数
	Cols int32 `yaml:"cols"` // 列数
}

// Vehicle 车辆生成配置
type Vehicle struct {
	InitialCount     int32   `yaml:"initial_count"`     // 初始投放车辆数
	SpawnProbability float64 `yaml:"spawn_probability"` // 每tick每路口生成新车的概率p
}

// Scheduler 信号灯调度策略配置
// 说明：name取值为fixed-interval、density、adaptive、independent之一，
// 其余字段为各策略的数值参数，未设置时采用默认值
type Scheduler struct {
	Name        string  `yaml:"name"`
	Interval    int32   `yaml:"interval,omitempty"`     // fixed-interval：全局切换周期N
	MinGreen    int32   `yaml:"min_green,omitempty"`    // 最短绿灯时长
	MaxGreen    int32   `yaml:"max_green,omitempty"`    // 最长绿灯时长
	SwitchRatio float64 `yaml:"switch_ratio,omitempty"` // density：对向车辆数超过比值时切换
	ScoreRatio  float64 `yaml:"score_ratio,omitempty"`  // adaptive：对向评分超过比值时切换
	WaitWeight  float64 `yaml:"wait_weight,omitempty"`  // adaptive：等待时长在评分中的权重
	TargetScale float64 `yaml:"target_scale,omitempty"` // independent：队列比转换为目标绿灯时长的系数
}

// Movement 移动裁决配置
type Movement struct {
	// 为true时绿灯放行上限为每队列每tick一辆（另一谱系实现的行为），
	// 默认为每方向组每tick一辆
	PerQueueCap bool `yaml:"per_queue_cap,omitempty"`
}

// ControlStep 指定模拟时间范围的配置项
type ControlStep struct {
	Start int32 `yaml:"start"` // 开始tick
	Total int32 `yaml:"total"` // 总tick数，模拟区间[start, start+total)
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
	Seed uint64      `yaml:"seed"` // 随机数种子，相同种子产生完全相同的模拟过程
}

// Output 指标输出配置（MongoDB），uri为空时禁用输出
type Output struct {
	URI      string `yaml:"uri,omitempty"`      // MongoDB连接字符串
	DB       string `yaml:"db,omitempty"`       // 数据库名
	Col      string `yaml:"col,omitempty"`      // 集合名
	Interval int32  `yaml:"interval,omitempty"` // 输出间隔tick数
}

// Config YAML配置文件的根结构
type Config struct {
	Grid      Grid      `yaml:"grid"`
	Vehicle   Vehicle   `yaml:"vehicle"`
	Scheduler Scheduler `yaml:"scheduler"`
	Movement  Movement  `yaml:"movement,omitempty"`
	Control   Control   `yaml:"control"`
	Output    Output    `yaml:"output,omitempty"`
}
