// Package metrics exposes Prometheus metrics for dispatched requests and
// background jobs.
//
//	m := metrics.New(metrics.WithRuntimeMetrics())
//	app := mvc.New(mvc.WithMetrics(m.Handler(), m))
//
// The app then serves the registry on /metrics and records
// mvc_dispatches_total and mvc_dispatch_duration_seconds for every dispatch.
package metrics
