package task

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/tsinghua-fib-lab/towngrid-sim-oss/clock"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/intersection"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/intersection/trafficlight"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/recorder"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/randengine"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔tick数")
)

var log = logrus.WithField("module", "task")

// Context 模拟任务上下文
// 功能：持有时钟、随机引擎、各管理器、调度策略与指标记录器，
// 驱动tick推进并对外提供只读快照接口
// 说明：整个模拟为单线程同步推进，一次一tick，tick内无并发修改
type Context struct {
	rc     *config.RuntimeConfig
	clock  *clock.Clock
	engine *randengine.Engine

	gridManager    entity.IGridManager
	vehicleManager entity.IVehicleManager
	scheduler      entity.IScheduler
	recorder       *recorder.Recorder
}

// NewContext 创建并初始化模拟任务上下文
// 功能：校验配置、构建时钟与随机引擎、初始化管理器与调度策略、
// 投放初始车辆
// 返回：上下文与构造错误（配置非法、策略名未知、输出连接失败）
// 算法说明：初始化顺序为网格管理器→车辆管理器→初始车辆投放，
// 随机数消耗顺序因此固定，相同种子的两次运行完全一致
func NewContext(c config.Config) (*Context, error) {
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		return nil, err
	}
	scheduler, err := trafficlight.NewScheduler(rc.All.Scheduler.Name, rc.All.Scheduler)
	if err != nil {
		return nil, err
	}
	rec, err := recorder.New(rc.All.Output)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		rc:             rc,
		clock:          clock.New(rc.C.Step),
		engine:         randengine.New(rc.C.Seed),
		gridManager:    intersection.NewManager(),
		vehicleManager: vehicle.NewManager(),
		scheduler:      scheduler,
		recorder:       rec,
	}
	ctx.gridManager.Init(ctx)
	ctx.vehicleManager.Init(ctx)
	ctx.vehicleManager.SpawnInitial()
	ctx.vehicleManager.Despawn()
	log.Infof("context ready: grid %dx%d, %d vehicles, scheduler %s",
		rc.All.Grid.Rows, rc.All.Grid.Cols, ctx.vehicleManager.Count(), scheduler.Name())
	return ctx, nil
}

// Clock 模拟时钟
func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

// RuntimeConfig 运行时配置
func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.rc
}

// Generator 随机数引擎
func (ctx *Context) Generator() *randengine.Engine {
	return ctx.engine
}

// GridManager 路口网格管理器
func (ctx *Context) GridManager() entity.IGridManager {
	return ctx.gridManager
}

// VehicleManager 车辆管理器
func (ctx *Context) VehicleManager() entity.IVehicleManager {
	return ctx.vehicleManager
}

// Scheduler 当前调度策略
func (ctx *Context) Scheduler() entity.IScheduler {
	return ctx.scheduler
}

// SetSchedulerStrategy 运行时切换调度策略
// 功能：按名字构建新策略并替换当前策略，所有信号灯相位计数器清零
// 返回：策略名未知时返回错误，当前策略保持不变
func (ctx *Context) SetSchedulerStrategy(name string) error {
	scheduler, err := trafficlight.NewScheduler(name, ctx.rc.All.Scheduler)
	if err != nil {
		return err
	}
	ctx.scheduler = scheduler
	ctx.gridManager.ResetLightCycles()
	log.Infof("scheduler strategy switched to %s", name)
	return nil
}

// Step 推进一个tick
// 功能：按固定顺序执行一个完整tick并推进时钟
// 算法说明：
// 1. 信号灯更新：相位计数器+1后由调度策略决定切换
// 2. 移动裁决：两阶段放行与入队（见网格管理器）
// 3. 老化：未移动的在途车辆累计等待，所有车辆累计tick
// 4. 生成与销毁：逐路口按概率生成新车，移出已到达车辆
// 说明：tick要么完整执行，任何中途失败都视为进程状态损坏
func (ctx *Context) Step() {
	tick := ctx.clock.Step

	ctx.gridManager.TickLights()
	ctx.scheduler.Decide(tick, ctx.gridManager)
	ctx.gridManager.ResolveMovement()
	ctx.vehicleManager.Age()
	ctx.vehicleManager.SpawnTick()
	ctx.vehicleManager.Despawn()

	ctx.clock.Step++

	if tick%int32(*heartBeatInterval) == 0 {
		log.Infof("%v: %d vehicles active, %d arrived",
			ctx.clock, ctx.vehicleManager.Count(), ctx.vehicleManager.TotalArrived())
	}
	if ctx.recorder.ShouldRecord(tick) {
		waits := make([]float64, 0, ctx.vehicleManager.Count())
		for _, v := range ctx.vehicleManager.Vehicles() {
			waits = append(waits, float64(v.TotalWaitingTime()))
		}
		ctx.recorder.Record(tick, ctx.vehicleManager.Count(), ctx.vehicleManager.TotalArrived(),
			ctx.vehicleManager.AverageSpeed(), waits)
	}
}

// Run 运行完整模拟区间
// 功能：推进时钟直到结束tick，输出运行总结并关闭记录器
func (ctx *Context) Run() {
	for !ctx.clock.Done() {
		ctx.Step()
	}
	log.Infof("simulation complete: %d ticks, %d vehicles arrived, %d still active",
		ctx.clock.Step-ctx.clock.START_STEP, ctx.vehicleManager.TotalArrived(), ctx.vehicleManager.Count())
	ctx.recorder.Close()
}
