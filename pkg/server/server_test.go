package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/quicktip/internal/catalog"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/metrics"
	"github.com/vango-dev/quicktip/pkg/protocol"
	"github.com/vango-dev/quicktip/pkg/quicktip"
)

func TestConfigDefaults(t *testing.T) {
	c := (*Config)(nil).withDefaults()
	assert.Equal(t, DefaultConfig(), c)

	custom := (&Config{Address: ":9000", QueueSize: -1}).withDefaults()
	assert.Equal(t, ":9000", custom.Address)
	assert.Equal(t, 64, custom.QueueSize)
	assert.Equal(t, 30*time.Second, custom.PingInterval)
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    bool
	}{
		{"no origin header", nil, "", "example.com", true},
		{"same origin", nil, "http://example.com", "example.com", true},
		{"cross origin", nil, "http://evil.test", "example.com", false},
		{"listed origin", []string{"https://docs.example.com/"}, "https://docs.example.com", "api.example.com", true},
		{"unlisted origin", []string{"https://docs.example.com"}, "https://evil.test", "api.example.com", false},
		{"wildcard", []string{"*"}, "https://anything.test", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{AllowedOrigins: tt.allowed}
			r := httptest.NewRequest(http.MethodGet, "/_quicktip/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, c.checkOrigin()(r))
		})
	}
}

func TestPageRoutes(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	html := string(body)
	assert.Contains(t, html, `data-hid="save"`)
	assert.Contains(t, html, `data-qtip="Save the file"`)
	assert.Contains(t, html, `<script src="/_quicktip/client.js" data-ws="/_quicktip/ws" defer></script>`)
	assert.Contains(t, html, "<title>quicktip</title>")
	assert.Contains(t, html, ".qtip{")

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestThinClientCaching(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_quicktip/client.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "pointerover")
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/_quicktip/client.js", nil)
	req.Header.Set("If-None-Match", `W/"other", `+etag)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/_quicktip/client.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "public, max-age=0, must-revalidate", rec.Header().Get("Cache-Control"))

	debug := New(&Config{Debug: true}, testPage, WithLogger(quietLogger()))
	rec = httptest.NewRecorder()
	debug.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_quicktip/client.js", nil))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, etag, rec.Header().Get("ETag"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := newTestServer(t, WithMetrics(metrics.New(metrics.WithRegistry(reg)), reg))
	srv.metrics.TipVetoed()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "quicktip_tips_vetoed_total 1")
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	f, err := protocol.DecodeFrame(msg)
	require.NoError(t, err)
	return f
}

func TestWebSocketSession(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg))
	srv := newTestServer(t,
		WithMetrics(m, reg),
		WithDispatcherOptions(
			quicktip.WithShowDelay(10*time.Millisecond),
			quicktip.WithHideDelay(10*time.Millisecond),
		),
	)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_quicktip/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return srv.SessionCount() == 1 }, time.Second, 5*time.Millisecond)

	send := func(f *protocol.Frame) {
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, f.Encode()))
	}

	send(protocol.NewFrame(protocol.FrameControl, protocol.EncodeControl(protocol.NewPing(7))))
	pong := readFrame(t, conn)
	require.Equal(t, protocol.FrameControl, pong.Type)

	send(protocol.NewFrame(protocol.FrameLayout, protocol.EncodeLayout(&protocol.Layout{
		Viewport: geom.R(0, 0, 1024, 768),
	})))
	send(pointerFrame(protocol.PointerOver, "save", "", 40, 40))

	f := readFrame(t, conn)
	require.Equal(t, protocol.FrameTip, f.Type)
	tip, err := protocol.DecodeTip(f.Payload)
	require.NoError(t, err)
	assert.Equal(t, protocol.TipShow, tip.Op)
	assert.Contains(t, tip.HTML, "Save the file")

	send(pointerFrame(protocol.PointerOut, "save", "", 40, 40))
	f = readFrame(t, conn)
	tip, err = protocol.DecodeTip(f.Payload)
	require.NoError(t, err)
	assert.Equal(t, protocol.TipHide, tip.Op)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return srv.SessionCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWebSocketRejectsCrossOrigin(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_quicktip/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.test"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, srv.SessionCount())
}

func TestWatchCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tips.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tips:\n  - targets: [plain]\n    text: First\n"), 0o644))

	reg := prometheus.NewRegistry()
	srv := newTestServer(t, WithMetrics(metrics.New(metrics.WithRegistry(reg)), reg))
	src := catalog.NewFileSource(path)
	src.Debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.WatchCatalog(ctx, src) }()

	require.Eventually(t, func() bool {
		c := srv.Catalog()
		return c != nil && c.Entries[0].Text == "First"
	}, 2*time.Second, 10*time.Millisecond)

	// A broken catalog keeps the previous one.
	require.NoError(t, os.WriteFile(path, []byte("tips: [\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "First", srv.Catalog().Entries[0].Text)

	require.NoError(t, os.WriteFile(path, []byte("tips:\n  - targets: [plain]\n    text: Second\n"), 0o644))
	require.Eventually(t, func() bool {
		return srv.Catalog().Entries[0].Text == "Second"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WatchCatalog did not return after cancel")
	}
}

func TestWatchCatalogLoadError(t *testing.T) {
	srv := newTestServer(t)
	src := catalog.NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"))

	err := srv.WatchCatalog(context.Background(), src)
	require.Error(t, err)
	assert.Nil(t, srv.Catalog())
}
