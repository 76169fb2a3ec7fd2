package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	renderDuration *prom.HistogramVec
	results        *prom.CounterVec
	lookups        *prom.CounterVec
	waiting        prom.Gauge
}

// NewPrometheusRecorder constructs and registers the pipeline metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdcanvas",
			Name:      "diagram_render_duration_seconds",
			Help:      "Duration of background diagram render jobs",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		results: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdcanvas",
			Name:      "diagram_results_total",
			Help:      "Diagram render outcomes",
		}, []string{"result"}),
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdcanvas",
			Name:      "diagram_lookups_total",
			Help:      "Diagram cache lookups by where they were satisfied",
		}, []string{"cache"}),
		waiting: prom.NewGauge(prom.GaugeOpts{
			Namespace: "mdcanvas",
			Name:      "diagrams_waiting",
			Help:      "Diagrams queued behind the single worker slot",
		}),
	}
	reg.MustRegister(pr.renderDuration, pr.results, pr.lookups, pr.waiting)
	return pr
}

func (pr *PrometheusRecorder) ObserveDiagramRenderDuration(d time.Duration, result ResultLabel) {
	pr.renderDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncDiagramResult(result ResultLabel) {
	pr.results.WithLabelValues(string(result)).Inc()
}

func (pr *PrometheusRecorder) IncDiagramLookup(cache CacheLabel) {
	pr.lookups.WithLabelValues(string(cache)).Inc()
}

func (pr *PrometheusRecorder) SetDiagramsWaiting(n int) {
	pr.waiting.Set(float64(n))
}
