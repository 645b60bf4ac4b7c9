// 每隔固定tick将聚合指标写入MongoDB的记录器
//
// 输出的是派生指标而非模拟状态，模拟状态本身不做持久化。
// 配置中uri为空时整个记录器被禁用，Record与Close均为空操作。
package recorder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gonum.org/v1/gonum/stat"

	"github.com/tsinghua-fib-lab/towngrid-sim-oss/utils/config"
)

var log = logrus.WithField("module", "recorder")

const opTimeout = 5 * time.Second

// Record 单个tick的聚合指标文档
type Record struct {
	RunID          string    `bson:"run_id"`          // 本次模拟运行的唯一标识
	Tick           int32     `bson:"tick"`            // 记录时刻
	ActiveVehicles int       `bson:"active_vehicles"` // 在途车辆数
	TotalArrived   int       `bson:"total_arrived"`   // 累计到达车辆数
	AverageSpeed   float64   `bson:"average_speed"`   // 在途车辆平均速度
	WaitMean       float64   `bson:"wait_mean"`       // 在途车辆累计等待时长均值
	WaitVariance   float64   `bson:"wait_variance"`   // 在途车辆累计等待时长方差
	RecordedAt     time.Time `bson:"recorded_at"`
}

// Recorder 指标记录器
type Recorder struct {
	client   *mongo.Client
	col      *mongo.Collection
	runID    string
	interval int32
}

// New 创建指标记录器
// 功能：按配置连接MongoDB并生成本次运行的run_id
// 返回：记录器与连接错误；cfg.URI为空时返回禁用的记录器且不报错
func New(cfg config.Output) (*Recorder, error) {
	if cfg.URI == "" {
		return &Recorder{}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	r := &Recorder{
		client:   client,
		col:      client.Database(cfg.DB).Collection(cfg.Col),
		runID:    uuid.NewString(),
		interval: cfg.Interval,
	}
	log.Infof("recording metrics to %s.%s every %d ticks (run %s)", cfg.DB, cfg.Col, cfg.Interval, r.runID)
	return r, nil
}

// Enabled 记录器是否启用
func (r *Recorder) Enabled() bool {
	return r.col != nil
}

// ShouldRecord 判断指定tick是否需要输出
func (r *Recorder) ShouldRecord(tick int32) bool {
	return r.Enabled() && tick%r.interval == 0
}

// Record 写入一条指标文档
// 功能：由等待时长样本计算均值与方差后插入MongoDB
// 参数：waits-各在途车辆的累计等待时长样本
// 说明：写入失败只记日志，不中断模拟
func (r *Recorder) Record(tick int32, active, arrived int, averageSpeed float64, waits []float64) {
	if !r.Enabled() {
		return
	}
	doc := Record{
		RunID:          r.runID,
		Tick:           tick,
		ActiveVehicles: active,
		TotalArrived:   arrived,
		AverageSpeed:   averageSpeed,
		RecordedAt:     time.Now(),
	}
	if len(waits) > 0 {
		doc.WaitMean = stat.Mean(waits, nil)
		doc.WaitVariance = stat.Variance(waits, nil)
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		log.Errorf("insert metrics at tick %d failed: %v", tick, err)
	}
}

// Close 断开MongoDB连接
func (r *Recorder) Close() {
	if !r.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := r.client.Disconnect(ctx); err != nil {
		log.Errorf("disconnect failed: %v", err)
	}
}
