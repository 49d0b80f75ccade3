package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/quicktip/internal/catalog"
	qerrors "github.com/vango-dev/quicktip/internal/errors"
	"github.com/vango-dev/quicktip/pkg/metrics"
	"github.com/vango-dev/quicktip/pkg/panel"
	"github.com/vango-dev/quicktip/pkg/quicktip"
	"github.com/vango-dev/quicktip/pkg/render"
	"github.com/vango-dev/quicktip/pkg/vdom"
)

// PageFunc builds the page served at "/". It is called once per page load
// and once per session and must build the same tree every time, so that
// the handles in the served HTML match the session's document.
type PageFunc func() *vdom.VNode

// Server serves a page and hosts one tooltip session per connected client.
type Server struct {
	config   *Config
	page     PageFunc
	renderer *render.Renderer
	upgrader websocket.Upgrader
	router   chi.Router

	tipOptions  []quicktip.Option
	panelConfig panel.Config
	observers   []quicktip.Observer
	metrics     *metrics.Metrics
	gatherer    prometheus.Gatherer
	tracer      trace.Tracer
	logger      *slog.Logger
	styles      []string

	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  *catalog.Catalog

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDispatcherOptions sets options applied to every session's dispatcher.
func WithDispatcherOptions(opts ...quicktip.Option) Option {
	return func(s *Server) {
		s.tipOptions = append(s.tipOptions, opts...)
	}
}

// WithPanelConfig sets the hint panel configuration of every session.
func WithPanelConfig(c panel.Config) Option {
	return func(s *Server) {
		s.panelConfig = c
	}
}

// WithObserver adds an observer to every session's dispatcher.
func WithObserver(obs quicktip.Observer) Option {
	return func(s *Server) {
		if obs != nil {
			s.observers = append(s.observers, obs)
		}
	}
}

// WithMetrics records sessions, frames and tip activity in m and serves
// gatherer at /metrics. A nil gatherer means prometheus.DefaultGatherer.
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		if gatherer != nil {
			s.gatherer = gatherer
		}
	}
}

// WithTracer sets the tracer used for frame and catalog spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithCatalog sets the initial tip catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithStyles adds inline CSS to the served page.
func WithStyles(css ...string) Option {
	return func(s *Server) {
		s.styles = append(s.styles, css...)
	}
}

// New creates a Server for the page built by page. A nil config uses
// DefaultConfig.
func New(config *Config, page PageFunc, opts ...Option) *Server {
	config = config.withDefaults()
	s := &Server{
		config:      config,
		page:        page,
		renderer:    render.NewRenderer(render.RendererConfig{Pretty: config.Debug}),
		panelConfig: panel.DefaultConfig(),
		gatherer:    prometheus.DefaultGatherer,
		tracer:      defaultTracer(),
		logger:      slog.Default(),
		styles:      []string{DefaultStyles},
		sessions:    make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.checkOrigin(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	if s.metrics != nil {
		s.observers = append(s.observers, s.metrics)
	}
	s.router = s.routes()
	return s
}

// routes builds the HTTP surface.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.servePage)
	r.Get(render.DefaultClientScript, s.serveThinClient)
	r.Head(render.DefaultClientScript, s.serveThinClient)
	r.Get(render.DefaultSocketPath, s.HandleWebSocket)
	r.Get("/healthz", s.serveHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// requestLogger logs each HTTP request at Debug.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Handler returns the server's http.Handler for mounting in another router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// buildTree builds a fresh page tree.
func (s *Server) buildTree() *vdom.VNode {
	if s.page == nil {
		return vdom.Body()
	}
	return s.page()
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	doc := vdom.NewDocument(s.buildTree())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	err := s.renderer.RenderPage(w, render.PageData{
		Body:   doc.Tree(),
		Title:  s.config.Title,
		Styles: s.styles,
		Debug:  s.config.Debug,
	})
	if err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// HandleWebSocket upgrades the connection and starts a session on it.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed",
			"error", qerrors.New(qerrors.ServerUpgrade).Wrap(err),
			"remote", r.RemoteAddr)
		return
	}

	session := s.openSession(conn, nil)
	session.logger.Info("session started",
		"remote", r.RemoteAddr,
		"request_id", middleware.GetReqID(r.Context()))
	session.Start()
}

// openSession creates and registers a session. The catalog is read under
// the same lock that registers the session, so a concurrent SetCatalog
// either precedes the session or reaches it.
func (s *Server) openSession(conn Conn, clock quicktip.Clock) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := newSession(conn, s.buildTree(), sessionParams{
		config:      s.config,
		logger:      s.logger,
		metrics:     s.metrics,
		observer:    quicktip.Observers(s.observers...),
		tracer:      s.tracer,
		tipOptions:  s.tipOptions,
		panelConfig: s.panelConfig,
		catalog:     s.catalog,
		clock:       clock,
		onClose:     s.removeSession,
	})
	s.sessions[session.ID] = session
	s.metrics.SessionOpened()
	return session
}

func (s *Server) removeSession(session *Session) {
	s.mu.Lock()
	_, ok := s.sessions[session.ID]
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	if ok {
		s.metrics.SessionClosed()
	}
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Catalog returns the current tip catalog, or nil.
func (s *Server) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// SetCatalog replaces the tip catalog and applies it to every open session
// on that session's event loop.
func (s *Server) SetCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}
	s.mu.Lock()
	s.catalog = c
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Dispatch(func() {
			session.applyCatalog(c)
		})
	}
	s.logger.Info("catalog applied", "source", c.Source, "entries", len(c.Entries), "sessions", len(sessions))
}

// WatchCatalog loads the catalog from src, applies it, and keeps applying
// changes until ctx is done. A catalog that fails to load or validate is
// logged and the previous one stays in effect.
func (s *Server) WatchCatalog(ctx context.Context, src catalog.Source) error {
	c, err := src.Load(ctx)
	s.metrics.CatalogReloaded(err)
	if err != nil {
		return err
	}
	s.SetCatalog(c)

	return src.Watch(ctx, func(c *catalog.Catalog, err error) {
		_, span := s.tracer.Start(ctx, "quicktip.catalog.reload",
			trace.WithAttributes(attribute.String("quicktip.catalog", src.String())))
		defer func() { endSpan(span, err) }()

		s.metrics.CatalogReloaded(err)
		if err != nil {
			s.logger.Warn("catalog reload failed, keeping previous catalog",
				"source", src.String(),
				"error", err)
			return
		}
		span.SetAttributes(attribute.Int("quicktip.entries", len(c.Entries)))
		s.SetCatalog(c)
	})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully and
// closes every session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return qerrors.New(qerrors.ServerListen).
			WithDetailf("could not listen on %s", s.config.Address).
			WithSuggestion("Choose another port with --port or stop the process using it").
			Wrap(err)

	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and closes every session.
func (s *Server) Shutdown() error {
	s.logger.Info("server shutting down")

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	}

	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	for _, session := range sessions {
		session.Shutdown("server shutting down")
	}
	return err
}
