// Package metrics exports quicktip activity to Prometheus.
//
// A single Metrics value is shared by the server and every session: it
// observes each dispatcher as a quicktip.Observer and is told about
// connections, frames and catalog reloads by the server.
//
//	m := metrics.New(metrics.WithNamespace("docs"))
//	d := quicktip.New(doc, p, quicktip.WithObserver(m))
//
//	http.Handle("/metrics", promhttp.Handler())
package metrics
