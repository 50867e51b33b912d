package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration   *prom.HistogramVec
	documentsParsed *prom.CounterVec
	filesWritten    *prom.CounterVec
	buildOutcome    *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg. A
// nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of a build mode",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		documentsParsed: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_parsed_total",
			Help:      "Source documents parsed",
		}, []string{"mode"}),
		filesWritten: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Output files written",
		}, []string{"mode"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"mode", "outcome"}),
	}
	reg.MustRegister(pr.buildDuration, pr.documentsParsed, pr.filesWritten, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(mode string, d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentsParsed(mode string) {
	if p == nil {
		return
	}
	p.documentsParsed.WithLabelValues(mode).Inc()
}

func (p *PrometheusRecorder) IncFilesWritten(mode string) {
	if p == nil {
		return
	}
	p.filesWritten.WithLabelValues(mode).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(mode string, outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(mode, string(outcome)).Inc()
}
