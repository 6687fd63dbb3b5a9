package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	buildDuration prom.Histogram
	stageDuration *prom.HistogramVec
	buildOutcome  *prom.CounterVec
	pagesRendered prom.Counter
}

// NewPrometheusRecorder constructs and registers the build metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pkgdown",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pkgdown",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pkgdown",
			Name:      "build_outcome_total",
			Help:      "Finished builds by outcome",
		}, []string{"outcome"}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: "pkgdown",
			Name:      "pages_rendered_total",
			Help:      "Pages written across builds",
		}),
	}
	reg.MustRegister(pr.buildDuration, pr.stageDuration, pr.buildOutcome, pr.pagesRendered)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) AddPagesRendered(n int) {
	p.pagesRendered.Add(float64(n))
}

// Handler serves the recorder's registry over HTTP.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
