package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 业务指标集合
type OTelMetrics struct {
	// 线索相关指标
	LeadsCreatedTotal metric.Int64Counter
	FollowsCreated    metric.Int64Counter

	// 任务相关指标
	TasksCreatedTotal metric.Int64Counter
	TasksStartedTotal metric.Int64Counter

	// 外呼相关指标
	CallsDispatchedTotal metric.Int64Counter
	CallsCompletedTotal  metric.Int64Counter
	CallDuration         metric.Float64Histogram
	CallQueueLength      metric.Int64UpDownCounter
}

var (
	metrics *OTelMetrics
	meter   = otel.Meter("leaddial")
)

// InitMetrics 初始化业务指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.LeadsCreatedTotal, err = meter.Int64Counter(
		"leads_created_total",
		metric.WithDescription("Total number of leads created"),
		metric.WithUnit("{lead}"),
	)
	if err != nil {
		return err
	}

	metrics.FollowsCreated, err = meter.Int64Counter(
		"follows_created_total",
		metric.WithDescription("Total number of follow-up records created"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal, err = meter.Int64Counter(
		"call_tasks_created_total",
		metric.WithDescription("Total number of call tasks created"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return err
	}

	metrics.TasksStartedTotal, err = meter.Int64Counter(
		"call_tasks_started_total",
		metric.WithDescription("Total number of call tasks started"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return err
	}

	metrics.CallsDispatchedTotal, err = meter.Int64Counter(
		"calls_dispatched_total",
		metric.WithDescription("Total number of outbound calls dispatched to the queue"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	metrics.CallsCompletedTotal, err = meter.Int64Counter(
		"calls_completed_total",
		metric.WithDescription("Total number of outbound calls completed"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	metrics.CallDuration, err = meter.Float64Histogram(
		"call_duration_seconds",
		metric.WithDescription("Outbound call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(5, 15, 30, 60, 120, 300, 600),
	)
	if err != nil {
		return err
	}

	metrics.CallQueueLength, err = meter.Int64UpDownCounter(
		"call_queue_length",
		metric.WithDescription("Number of call jobs currently queued"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Get 返回全局指标实例，未初始化时返回 nil（调用方需判空，指标不可用不阻塞业务）
func Get() *OTelMetrics {
	return metrics
}

// RecordLeadCreated 记录一条新建线索
func RecordLeadCreated(ctx context.Context, source string) {
	if metrics == nil {
		return
	}
	metrics.LeadsCreatedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
	))
}

// RecordFollowCreated 记录一条跟进记录
func RecordFollowCreated(ctx context.Context, followWay string) {
	if metrics == nil {
		return
	}
	metrics.FollowsCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("follow_way", followWay),
	))
}

// RecordTaskCreated 记录一条新建任务
func RecordTaskCreated(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.TasksCreatedTotal.Add(ctx, 1)
}

// RecordTaskStarted 记录一次任务启动
func RecordTaskStarted(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.TasksStartedTotal.Add(ctx, 1)
}

// RecordCallsDispatched 记录投递到队列的外呼作业数
func RecordCallsDispatched(ctx context.Context, n int64) {
	if metrics == nil {
		return
	}
	metrics.CallsDispatchedTotal.Add(ctx, n)
	metrics.CallQueueLength.Add(ctx, n)
}

// RecordCallDequeued 外呼作业出队
func RecordCallDequeued(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.CallQueueLength.Add(ctx, -1)
}

// RecordCallCompleted 记录一次外呼完成
func RecordCallCompleted(ctx context.Context, connected bool, durationSeconds float64) {
	if metrics == nil {
		return
	}
	metrics.CallsCompletedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("connected", connected),
	))
	if connected {
		metrics.CallDuration.Record(ctx, durationSeconds)
	}
}
