package framework

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 拉取结果
const (
	consumeResultMessage = "message"
	consumeResultEmpty   = "empty"
	consumeResultError   = "error"
)

var (
	// ConsumeTotal 按队列统计拉取结果
	ConsumeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neuroscan_worker_consume_total",
		Help: "Queue pulls by queue and result (message, empty, error)",
	}, []string{"queue", "result"})

	// BufferedMessages 等待 Processor 处理的消息数
	BufferedMessages = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "neuroscan_worker_buffered_messages",
		Help: "Messages pulled but not yet picked up by a processor",
	}, []string{"queue"})

	// JobsTotal 按处理结果统计任务数
	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neuroscan_worker_jobs_total",
		Help: "Processed jobs by queue and action (success, release, bury)",
	}, []string{"queue", "action"})

	// JobDuration 任务处理耗时
	JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neuroscan_worker_job_duration_seconds",
		Help:    "Job processing duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms ~ 20s
	}, []string{"queue"})
)
