package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/quicktip/pkg/quicktip"
	"github.com/vango-dev/quicktip/pkg/tiptest"
	"github.com/vango-dev/quicktip/pkg/vdom"
)

func newTestMetrics(t *testing.T, opts ...Option) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(append([]Option{WithRegistry(reg)}, opts...)...), reg
}

func TestObserverCounters(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.TipResolved(quicktip.SourceMarkup)
	m.TipResolved(quicktip.SourceMarkup)
	m.TipShown(quicktip.SourceRegistry)
	m.TipHidden(quicktip.HidePointerOut)
	m.TipVetoed()

	if got := testutil.ToFloat64(m.resolved.WithLabelValues("markup")); got != 2 {
		t.Errorf("resolved{markup} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.shown.WithLabelValues("registry")); got != 1 {
		t.Errorf("shown{registry} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.hidden.WithLabelValues("pointer-out")); got != 1 {
		t.Errorf("hidden{pointer-out} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.vetoed); got != 1 {
		t.Errorf("vetoed = %v, want 1", got)
	}
}

func TestTransportMetrics(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.FrameReceived("Pointer")
	m.FrameSent("Tip")
	m.FrameSent("Tip")
	m.FrameRejected("InvalidEvent")
	m.ObserveEvent(300 * time.Microsecond)
	m.CatalogReloaded(nil)
	m.CatalogReloaded(errors.New("bad yaml"))

	if got := testutil.ToFloat64(m.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.framesSent.WithLabelValues("Tip")); got != 2 {
		t.Errorf("frames_sent{Tip} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.frameErrors.WithLabelValues("InvalidEvent")); got != 1 {
		t.Errorf("frame_errors{InvalidEvent} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.catalogReloads.WithLabelValues("error")); got != 1 {
		t.Errorf("catalog_reloads{error} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.eventDuration); got != 1 {
		t.Errorf("event_duration series = %d, want 1", got)
	}
}

func TestNamespaceAndLabels(t *testing.T) {
	m, reg := newTestMetrics(t,
		WithNamespace("docs"),
		WithSubsystem("hints"),
		WithConstLabels(prometheus.Labels{"site": "manual"}),
	)
	m.TipVetoed()

	expected := `
# HELP docs_hints_tips_vetoed_total Total number of tip shows vetoed by a before-show hook
# TYPE docs_hints_tips_vetoed_total counter
docs_hints_tips_vetoed_total{site="manual"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "docs_hints_tips_vetoed_total"); err != nil {
		t.Error(err)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.TipResolved(quicktip.SourceTitle)
	m.TipShown(quicktip.SourceTitle)
	m.TipHidden(quicktip.HideDismissed)
	m.TipVetoed()
	m.SessionOpened()
	m.SessionClosed()
	m.FrameReceived("Pointer")
	m.FrameSent("Tip")
	m.FrameRejected("InvalidFrame")
	m.ObserveEvent(time.Millisecond)
	m.CatalogReloaded(nil)
}

func TestObservesDispatcher(t *testing.T) {
	m, _ := newTestMetrics(t)
	env := tiptest.NewEnv(
		vdom.Body(vdom.Button(vdom.ID("save"), vdom.Data("qtip", "Save"))),
		quicktip.WithObserver(quicktip.Observers(m, &tiptest.Recorder{})),
	)

	env.Over("save", "")
	env.Advance(quicktip.DefaultShowDelay)
	env.Out("save", "")
	env.Advance(quicktip.DefaultHideDelay)

	if got := testutil.ToFloat64(m.shown.WithLabelValues("markup")); got != 1 {
		t.Errorf("shown{markup} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.hidden.WithLabelValues("pointer-out")); got != 1 {
		t.Errorf("hidden{pointer-out} = %v, want 1", got)
	}
}
