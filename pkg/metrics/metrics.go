// Package metrics 暴露 Prometheus 指标。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 服务指标集合，使用独立 Registry，测试中可重复创建
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	marks        *prometheus.CounterVec
	logins       *prometheus.CounterVec
	saveFailures prometheus.Counter
}

// New 创建并注册全部指标
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presence",
			Name:      "http_requests_total",
			Help:      "HTTP 请求数",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "presence",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		marks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presence",
			Name:      "marks_recorded_total",
			Help:      "写入的出勤标记数",
		}, []string{"mark"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presence",
			Name:      "logins_total",
			Help:      "登录尝试次数",
		}, []string{"result"}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "presence",
			Name:      "document_save_failures_total",
			Help:      "考勤文档保存失败次数",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.marks,
		m.logins,
		m.saveFailures,
	)
	return m
}

// Handler /metrics 输出
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry 供测试读取
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware 记录请求数与耗时；未匹配路由统一记为 unmatched
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// MarkRecorded 累计一次出勤标记写入
func (m *Metrics) MarkRecorded(mark string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.marks.WithLabelValues(mark).Add(float64(n))
}

// LoginAttempt 累计登录结果（success | failure）
func (m *Metrics) LoginAttempt(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}

// SaveFailed 累计一次保存失败
func (m *Metrics) SaveFailed() {
	if m == nil {
		return
	}
	m.saveFailures.Inc()
}
