package handlers

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Metrics collects turn and HTTP counters. One instance is shared between
// the chat handler, the metrics middleware, and the metrics endpoint.
type Metrics struct {
	mutex            sync.RWMutex
	turnsTotal       int64
	requestsTotal    map[string]int64
	requestDurations []float64
	activeRequests   int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		requestsTotal: make(map[string]int64),
	}
}

// RecordTurn counts one completed conversation turn.
func (m *Metrics) RecordTurn() {
	m.mutex.Lock()
	m.turnsTotal++
	m.mutex.Unlock()
}

// RequestStarted / RequestFinished bracket one HTTP request.
func (m *Metrics) RequestStarted() {
	m.mutex.Lock()
	m.activeRequests++
	m.mutex.Unlock()
}

func (m *Metrics) RequestFinished(key string, durationSeconds float64) {
	m.mutex.Lock()
	m.requestsTotal[key]++
	m.requestDurations = append(m.requestDurations, durationSeconds)
	m.activeRequests--

	// Keep only last 1000 durations to prevent memory leak
	if len(m.requestDurations) > 1000 {
		m.requestDurations = m.requestDurations[len(m.requestDurations)-1000:]
	}
	m.mutex.Unlock()
}

type MetricsHandler struct {
	logger  *zap.Logger
	metrics *Metrics
}

func NewMetricsHandler(logger *zap.Logger, metrics *Metrics) *MetricsHandler {
	return &MetricsHandler{
		logger:  logger,
		metrics: metrics,
	}
}

// ServeMetrics exposes the counters in Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	h.metrics.mutex.RLock()
	defer h.metrics.mutex.RUnlock()

	var avgDuration float64
	if len(h.metrics.requestDurations) > 0 {
		sum := 0.0
		for _, d := range h.metrics.requestDurations {
			sum += d
		}
		avgDuration = sum / float64(len(h.metrics.requestDurations))
	}

	response := ""

	response += "# HELP chat_turns_total Total number of conversation turns handled\n"
	response += "# TYPE chat_turns_total counter\n"
	response += "chat_turns_total " + strconv.FormatInt(h.metrics.turnsTotal, 10) + "\n"

	response += "\n# HELP http_requests_total Total number of HTTP requests\n"
	response += "# TYPE http_requests_total counter\n"
	for key, count := range h.metrics.requestsTotal {
		response += "http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(count, 10) + "\n"
	}

	response += "\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n"
	response += "# TYPE http_request_duration_seconds_avg gauge\n"
	response += "http_request_duration_seconds_avg " + strconv.FormatFloat(avgDuration, 'f', 6, 64) + "\n"

	response += "\n# HELP http_active_requests Number of active HTTP requests\n"
	response += "# TYPE http_active_requests gauge\n"
	response += "http_active_requests " + strconv.FormatInt(h.metrics.activeRequests, 10) + "\n"

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, response)
}
