// Package metrics provides Prometheus-based recording for LLM calls, user actions and SEO scores.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns its registry so several servers (and tests) can coexist in one process.
type Recorder struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	tokensTotal     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	actionsTotal    *prometheus.CounterVec
	seoScore        prometheus.Histogram
	activeSessions  prometheus.Gauge
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total number of LLM requests by provider, model and status",
			},
			[]string{"provider", "model", "status", "error_type"},
		),
		tokensTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_tokens_total",
				Help: "Estimated number of tokens sent to and received from the LLM",
			},
			[]string{"provider", "model", "type"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Duration of LLM requests in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
			},
			[]string{"provider", "model"},
		),
		actionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generator_actions_total",
				Help: "User actions by step and outcome",
			},
			[]string{"action", "outcome"},
		),
		seoScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "generator_seo_score",
			Help:    "Composite SEO score of generated articles",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "generator_active_sessions",
			Help: "Sessions currently held in memory",
		}),
	}
}

// ObserveLLMCall records one completed collaborator call. errorType is empty on success.
func (r *Recorder) ObserveLLMCall(provider, model string, promptTokens, completionTokens int, errorType string, duration time.Duration) {
	status := "success"
	if errorType != "" {
		status = "error"
	}
	r.requestsTotal.WithLabelValues(provider, model, status, errorType).Inc()
	if errorType == "" {
		r.tokensTotal.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
		r.tokensTotal.WithLabelValues(provider, model, "completion").Add(float64(completionTokens))
	}
	r.requestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
}

// ObserveAction counts a user-triggered action and how it ended.
func (r *Recorder) ObserveAction(action, outcome string) {
	r.actionsTotal.WithLabelValues(action, outcome).Inc()
}

func (r *Recorder) ObserveScore(score int) {
	r.seoScore.Observe(float64(score))
}

func (r *Recorder) SetActiveSessions(n int) {
	r.activeSessions.Set(float64(n))
}

// Handler exposes the registry for /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
