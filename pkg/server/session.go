package server

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/quicktip/internal/catalog"
	qerrors "github.com/vango-dev/quicktip/internal/errors"
	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/metrics"
	"github.com/vango-dev/quicktip/pkg/panel"
	"github.com/vango-dev/quicktip/pkg/protocol"
	"github.com/vango-dev/quicktip/pkg/quicktip"
	"github.com/vango-dev/quicktip/pkg/render"
	"github.com/vango-dev/quicktip/pkg/vdom"
)

// Conn is the part of *websocket.Conn a session uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Session is one connected page. It owns a document mirroring the page, a
// hint panel and the dispatcher driving it. All three are only touched by
// the session's event loop.
type Session struct {
	// Identity
	ID        string
	CreatedAt time.Time

	conn     Conn
	config   *Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	renderer *render.Renderer

	// Loop-owned state
	doc        *vdom.Document
	layer      *panel.Layer
	panel      *panel.Panel
	dispatcher *quicktip.Dispatcher
	catalog    *catalog.Catalog
	sent       panel.State

	// Channels
	frames     chan *protocol.Frame
	dispatchCh chan func()
	done       chan struct{}

	// mu serializes writes to conn.
	mu     sync.Mutex
	closed atomic.Bool

	onClose func(*Session)
}

// sessionParams carries what the server hands each new session.
type sessionParams struct {
	config      *Config
	logger      *slog.Logger
	metrics     *metrics.Metrics
	observer    quicktip.Observer
	tracer      trace.Tracer
	tipOptions  []quicktip.Option
	panelConfig panel.Config
	catalog     *catalog.Catalog
	clock       quicktip.Clock
	onClose     func(*Session)
}

// newSession builds a session over tree. A nil clock runs timers on the
// session's event loop.
func newSession(conn Conn, tree *vdom.VNode, p sessionParams) *Session {
	id := generateSessionID()
	s := &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		conn:       conn,
		config:     p.config,
		logger:     p.logger.With("session_id", id),
		metrics:    p.metrics,
		tracer:     p.tracer,
		renderer:   render.NewRenderer(render.RendererConfig{OmitHIDs: true}),
		frames:     make(chan *protocol.Frame, p.config.QueueSize),
		dispatchCh: make(chan func(), p.config.QueueSize),
		done:       make(chan struct{}),
		onClose:    p.onClose,
	}

	s.doc = vdom.NewDocument(tree)
	s.layer = panel.NewLayer(s.doc)
	s.panel = panel.New(s.layer, s.doc, p.panelConfig)
	s.sent = s.panel.State()

	clock := p.clock
	if clock == nil {
		clock = loopClock{s: s}
	}
	opts := append([]quicktip.Option{}, p.tipOptions...)
	opts = append(opts,
		quicktip.WithClock(clock),
		quicktip.WithLogger(s.logger),
	)
	if p.observer != nil {
		opts = append(opts, quicktip.WithObserver(p.observer))
	}
	s.dispatcher = quicktip.New(s.doc, s.panel, opts...)
	s.applyCatalog(p.catalog)
	return s
}

// Dispatcher returns the session's dispatcher. It must only be used from
// functions passed to Dispatch.
func (s *Session) Dispatcher() *quicktip.Dispatcher {
	return s.dispatcher
}

// Document returns the session's document. It must only be used from
// functions passed to Dispatch.
func (s *Session) Document() *vdom.Document {
	return s.doc
}

// Start starts all session loops.
func (s *Session) Start() {
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// ReadLoop reads frames from the connection until it closes. Control frames
// are answered here; everything else is queued for the event loop.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.reject(protocol.ErrInvalidFrame, qerrors.New(qerrors.ProtocolInvalidFrame).Wrap(err))
			continue
		}
		s.metrics.FrameReceived(frame.Type.String())

		if frame.Type == protocol.FrameControl {
			s.handleControlFrame(frame.Payload)
			continue
		}
		if err := s.QueueFrame(frame); err != nil {
			s.logger.Warn("frame dropped",
				"error", qerrors.New(qerrors.ServerQueueFull).Wrap(err),
				"type", frame.Type)
			s.sendError(protocol.ErrRateLimited, "Frame queue full")
		}
	}
}

// handleControlFrame answers pings and notes pongs.
func (s *Session) handleControlFrame(payload []byte) {
	c, err := protocol.DecodeControl(payload)
	if err != nil {
		s.reject(protocol.ErrInvalidEvent, qerrors.New(qerrors.ProtocolInvalidPayload).Wrap(err))
		return
	}

	switch c.Type {
	case protocol.ControlPing:
		s.writeFrame(protocol.FrameControl, protocol.EncodeControl(c.Pong()))
	case protocol.ControlPong:
		s.logger.Debug("received pong", "rtt", time.Since(time.UnixMilli(int64(c.Timestamp))))
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ping := protocol.NewPing(uint64(time.Now().UnixMilli()))
			if err := s.writeFrame(protocol.FrameControl, protocol.EncodeControl(ping)); err != nil {
				return
			}

		case <-s.done:
			return
		}
	}
}

// EventLoop applies queued frames and dispatched functions, one at a time,
// and sends the resulting panel and attribute changes. It tears the
// dispatcher down when the session closes.
func (s *Session) EventLoop() {
	defer s.dispatcher.Destroy()

	for {
		select {
		case frame := <-s.frames:
			s.handleFrame(frame)

		case fn := <-s.dispatchCh:
			s.executeDispatch(fn)

		case <-s.done:
			return
		}
	}
}

// QueueFrame queues a client frame for the event loop without blocking.
func (s *Session) QueueFrame(frame *protocol.Frame) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.frames <- frame:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dispatch runs fn on the session's event loop and then sends whatever it
// changed. It blocks until fn is queued or the session closes.
func (s *Session) Dispatch(fn func()) {
	if s.closed.Load() {
		return
	}
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	}
}

// executeDispatch runs a dispatched function with panic recovery.
func (s *Session) executeDispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	fn()
	s.flush()
}

// handleFrame applies one client frame on the event loop.
func (s *Session) handleFrame(frame *protocol.Frame) {
	start := time.Now()
	_, span := s.startFrameSpan(frame.Type)

	var err error
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("frame panic",
				"panic", r,
				"type", frame.Type,
				"stack", string(debug.Stack()))
			err = qerrors.Newf(qerrors.CategoryServer, "panic: %v", r)
			s.sendError(protocol.ErrServerError, "Internal error")
		}
		endSpan(span, err)
		s.metrics.ObserveEvent(time.Since(start))
	}()

	switch frame.Type {
	case protocol.FramePointer:
		var p *protocol.Pointer
		if p, err = protocol.DecodePointer(frame.Payload); err != nil {
			err = qerrors.New(qerrors.ProtocolInvalidPayload).Wrap(err)
			s.reject(protocol.ErrInvalidEvent, err)
			return
		}
		span.SetAttributes(
			attribute.String("quicktip.pointer", p.Kind.String()),
			attribute.String("quicktip.target", p.Target),
		)
		s.handlePointer(p)

	case protocol.FrameLayout:
		var l *protocol.Layout
		if l, err = protocol.DecodeLayout(frame.Payload); err != nil {
			err = qerrors.New(qerrors.ProtocolInvalidPayload).Wrap(err)
			s.reject(protocol.ErrInvalidEvent, err)
			return
		}
		span.SetAttributes(attribute.Int("quicktip.boxes", len(l.Boxes)))
		s.handleLayout(l)

	default:
		err = qerrors.New(qerrors.ProtocolUnexpected).WithDetailf("frame type %s", frame.Type)
		s.reject(protocol.ErrUnexpected, err)
		return
	}

	s.flush()
}

// handlePointer feeds a pointer report to the dispatcher. Handles the
// document does not know are treated as outside the document.
func (s *Session) handlePointer(p *protocol.Pointer) {
	ev := quicktip.PointerEvent{
		Target:  s.lookup(p.Target),
		Related: s.lookup(p.Related),
		Point:   p.Point,
	}

	switch p.Kind {
	case protocol.PointerOver:
		s.dispatcher.PointerOver(ev)
	case protocol.PointerOut:
		s.dispatcher.PointerOut(ev)
	case protocol.PointerMove:
		s.dispatcher.PointerMove(ev)
	}
}

func (s *Session) lookup(h string) dom.Node {
	if h == "" {
		return nil
	}
	return s.doc.Lookup(dom.Handle(h))
}

// handleLayout records the client's viewport and element boxes.
func (s *Session) handleLayout(l *protocol.Layout) {
	s.doc.SetViewport(l.Viewport)
	for _, b := range l.Boxes {
		s.doc.SetBounds(dom.Handle(b.Handle), b.Rect)
	}
}

// applyCatalog replaces the session's catalog registrations with c's.
func (s *Session) applyCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}
	c.Apply(s.dispatcher, s.catalog)
	s.catalog = c
}

// flush sends the panel if it changed since it was last sent, and any
// attribute changes the dispatcher made to the document.
func (s *Session) flush() {
	if st := s.panel.State(); st != s.sent {
		switch {
		case st.Visible:
			s.sendTip(st)
		case s.sent.Visible:
			s.writeFrame(protocol.FrameTip, protocol.EncodeTip(&protocol.Tip{Op: protocol.TipHide}))
		}
		s.sent = st
	}

	changes := s.doc.DrainChanges()
	if len(changes) == 0 {
		return
	}
	out := make([]protocol.AttrChange, 0, len(changes))
	for _, c := range changes {
		ac := protocol.AttrChange{Handle: string(c.Handle), Name: c.Name, Op: protocol.AttrSet, Value: c.Value}
		if c.Removed {
			ac.Op, ac.Value = protocol.AttrRemove, ""
		}
		out = append(out, ac)
	}
	s.writeFrame(protocol.FrameAttr, protocol.EncodeAttrChanges(out))
}

func (s *Session) sendTip(st panel.State) {
	html, err := s.renderer.RenderToString(s.panel.Node())
	if err != nil {
		s.logger.Error("render panel", "error", err)
		return
	}
	s.writeFrame(protocol.FrameTip, protocol.EncodeTip(&protocol.Tip{
		Op:     protocol.TipShow,
		HTML:   html,
		Box:    geom.RectAt(st.Position, st.Size),
		Z:      st.Z,
		Anchor: string(st.Anchor),
		Target: string(s.panel.AnchoredTo()),
	}))
}

// reject logs a client frame that could not be applied and tells the
// client. The session carries on.
func (s *Session) reject(code protocol.ErrorCode, err error) {
	s.logger.Error("frame rejected", "error", err, "code", code)
	s.metrics.FrameRejected(code.String())
	s.sendError(code, err.Error())
}

func (s *Session) sendError(code protocol.ErrorCode, message string) {
	s.writeFrame(protocol.FrameError, protocol.EncodeErrorMessage(protocol.NewError(code, message)))
}

// Shutdown tells the client the server is going away, then closes the
// session.
func (s *Session) Shutdown(reason string) {
	s.writeFrame(protocol.FrameError, protocol.EncodeErrorMessage(protocol.NewFatalError(protocol.ErrServerError, reason)))
	s.Close()
}

// writeFrame sends one frame. A failed write closes the session.
func (s *Session) writeFrame(ft protocol.FrameType, payload []byte) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.conn == nil {
		s.mu.Unlock()
		return ErrNoConnection
	}
	frame := protocol.NewFrame(ft, payload)
	if err := frame.Check(); err != nil {
		s.mu.Unlock()
		s.logger.Error("frame not sent", "type", ft, "size", len(payload), "error", err)
		return err
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	err := s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("write error",
			"error", qerrors.New(qerrors.ServerSessionGone).Wrap(err),
			"type", ft)
		s.Close()
		return NewSessionError(s.ID, "write", ft, err)
	}
	s.metrics.FrameSent(ft.String())
	return nil
}

// IsClosed reports whether the session has been closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Close gracefully closes the session. It is safe to call more than once
// and from any goroutine.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}

	s.logger.Info("session closed", "duration", time.Since(s.CreatedAt))
	if s.onClose != nil {
		s.onClose(s)
	}
}

// generateSessionID returns a random 16-byte hex string.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:32]
	}
	return hex.EncodeToString(b)
}
