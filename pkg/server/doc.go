// Package server hosts quicktip over HTTP and WebSocket.
//
// The server renders a page whose elements carry data-hid handles and
// serves a thin client that reports pointer movement and element boxes
// over a WebSocket. Each connection gets a Session: its own copy of the
// page as a vdom.Document, a hint panel and a quicktip.Dispatcher, all
// owned by a single event loop goroutine.
//
// # Routes
//
//	GET /                     the page
//	GET /_quicktip/client.js  the thin client
//	GET /_quicktip/ws         WebSocket endpoint
//	GET /metrics              Prometheus metrics
//	GET /healthz              liveness
//
// # Session loops
//
// ReadLoop decodes frames and queues them; EventLoop applies them to the
// dispatcher, runs timer callbacks marshalled onto the loop, and sends the
// resulting panel and attribute changes; WriteLoop sends heartbeat pings.
//
// # Catalogs
//
// SetCatalog and WatchCatalog apply a tip catalog to every open session and
// to sessions opened later:
//
//	srv := server.New(cfg, page, server.WithMetrics(m, nil))
//	go srv.WatchCatalog(ctx, catalog.NewFileSource("tips.yaml"))
//	srv.ListenAndServe(ctx)
package server
