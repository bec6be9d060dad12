// Package metrics collects per-run Prometheus counters.
//
// The tool is a short-lived CLI, so nothing is served over HTTP. Instead the counters
// are written to a node_exporter textfile-collector file when metrics.textfile is set.
package metrics
