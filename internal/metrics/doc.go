// Package metrics records build metrics for mdsite runs.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder is swapped in when a
// metrics file is requested:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	builder := site.NewBuilder(opts).WithRecorder(recorder)
//	...
//	metrics.WriteTextfile(reg, "/var/lib/node_exporter/mdsite.prom")
//
// The textfile uses the Prometheus text exposition format so it can be picked
// up by node_exporter's textfile collector after one-shot CLI runs.
package metrics
