package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal 按结果类型统计分类次数
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neuroscan_classifications_total",
		Help: "Total MRI classifications by outcome kind",
	}, []string{"kind"})

	// HTTPRequestsTotal 按路由和状态码统计请求数
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neuroscan_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "neuroscan_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms ~ 10s
	}, []string{"method", "route"})

	// ThumbnailJobsPublished 缩略图任务投递结果
	ThumbnailJobsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neuroscan_thumbnail_jobs_published_total",
		Help: "Thumbnail render jobs published, by result",
	}, []string{"result"})
)
