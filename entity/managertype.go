package entity

// 跨包依赖倒置接口。各实体的具体实现位于entity子包中，
// 此处仅声明其他包需要访问的能力，避免包间循环依赖。

// entity/vehicle/vehicle.go的依赖倒置
type IVehicle interface {
	ID() int32             // 获取车辆ID
	Position() Position    // 获取当前所在路口坐标
	Destination() Position // 获取目的地坐标
	Path() []Position      // 获取规划路径（含起点与终点）
	Trajectory() []Position

	// NextPosition 路径中当前索引之后的下一个坐标，已到达目的地时返回当前坐标
	NextPosition() Position
	// NextDirection 指向下一个路径点的行进方向，已到达目的地时第二个返回值为false
	NextDirection() (Direction, bool)
	// TurnType 依据当前索引之后的两个路径点分类转向，剩余路径点不足两个时为直行
	TurnType() TurnType
	// Advance 前进到路径中的下一个坐标；已到达目的地时为空操作
	Advance()
	// HasArrived 当前坐标是否等于目的地
	HasArrived() bool

	RecordWait()             // 在当前坐标上累计一次等待
	WaitingTime() int32      // 当前坐标上的累计等待时长
	TotalWaitingTime() int32 // 全部坐标上的累计等待时长
	IncrementSteps()         // 累计一个经过的tick
	DistanceTraveled() int32 // 累计移动距离
	Steps() int32            // 累计经过的tick数
	AverageSpeed() float64   // 平均速度（距离/tick数，无tick时为0）

	MarkMoved()         // 标记本tick已移动（由移动裁决调用）
	ConsumeMoved() bool // 读取并清除本tick移动标记
}

// entity/intersection/trafficlight/trafficlight.go的依赖倒置
type ITrafficLight interface {
	Phase() LightPhase // 当前相位
	Cycle() int32      // 距上次切换经过的tick数
	Tick()             // 相位计数器+1，每tick调用一次
	// Switch 无条件翻转相位并将计数器清零，仅由调度策略调用
	Switch()
	// SetPhase 设定目标相位，与当前相位不同时等价于Switch，相同时为空操作
	SetPhase(phase LightPhase)
	ResetCycle() // 计数器清零（策略热切换时使用）
}

// entity/intersection/intersection.go的依赖倒置
type IIntersection interface {
	Position() Position
	Light() ITrafficLight

	QueueLength(d Direction) int        // 指定方向排队车辆数
	AxisCount(a Axis) int               // 方向组排队车辆总数
	AxisWaitingTime(a Axis) int32       // 方向组排队车辆在当前坐标的等待时长之和
	VehiclesFrom(d Direction) []IVehicle // 指定方向队列中的车辆（队首在前）
}

// entity/intersection/trafficlight包中调度策略的依赖倒置
// 每tick调用一次，读取路口队列状态并决定各信号灯是否切换
type IScheduler interface {
	Name() string
	Decide(tick int32, grid IGridManager)
}

// entity/intersection/manager.go的依赖倒置
type IGridManager interface {
	Init(ctx ITaskContext)

	Rows() int32
	Cols() int32
	// 输入路口坐标，查找路口，坐标归一化后必然存在，否则panic
	Get(pos Position) IIntersection
	// Intersections 行优先顺序的全部路口
	Intersections() []IIntersection

	// AddVehicle 将车辆加入其当前坐标路口中行进方向对应的队列；
	// 已到达目的地的车辆不入队
	AddVehicle(v IVehicle)
	// TickLights 所有信号灯相位计数器+1
	TickLights()
	// ResetLightCycles 所有信号灯相位计数器清零
	ResetLightCycles()
	// ResolveMovement 执行一tick的移动裁决（先全部出队，后统一入队）
	ResolveMovement()

	TotalQueued() int // 全网排队车辆总数
}

// entity/vehicle/manager.go的依赖倒置
type IVehicleManager interface {
	Init(ctx ITaskContext)

	// AddVehicle 以给定起终点创建车辆并入网
	AddVehicle(start, destination Position) (IVehicle, error)
	// SpawnInitial 按配置投放初始车辆
	SpawnInitial()
	// SpawnTick 每个路口以概率p生成一辆随机终点的车辆
	SpawnTick()
	// Age 对本tick未移动的在途车辆累计等待，并推进所有车辆的tick计数
	Age()
	// Despawn 将已到达目的地的车辆移出车辆名册，返回移除数量
	Despawn() int

	Count() int            // 在途车辆数
	TotalArrived() int     // 累计到达车辆数
	Vehicles() []IVehicle  // 在途车辆（按ID升序）
	AverageSpeed() float64 // 在途车辆平均速度
}
