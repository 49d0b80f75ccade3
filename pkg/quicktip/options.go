package quicktip

import (
	"log/slog"
	"time"

	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
)

// Dispatcher defaults.
const (
	DefaultShowDelay         = 500 * time.Millisecond
	DefaultHideDelay         = 200 * time.Millisecond
	DefaultDismissDelay      = 5 * time.Second
	DefaultQuickShowInterval = 250 * time.Millisecond
)

// DefaultMouseOffset is the distance from the pointer to the panel's
// top-left corner for point-positioned tips.
var DefaultMouseOffset = geom.Pt(15, 18)

type options struct {
	showDelay         time.Duration
	hideDelay         time.Duration
	dismissDelay      time.Duration
	quickShowInterval time.Duration
	mouseOffset       geom.Point
	interceptTitles   bool
	trackMouse        bool
	convention        Convention
	scope             dom.Handle
	clock             Clock
	logger            *slog.Logger
	observer          Observer
}

func defaultOptions() options {
	return options{
		showDelay:         DefaultShowDelay,
		hideDelay:         DefaultHideDelay,
		dismissDelay:      DefaultDismissDelay,
		quickShowInterval: DefaultQuickShowInterval,
		mouseOffset:       DefaultMouseOffset,
		convention:        DefaultConvention("data-"),
		clock:             SystemClock{},
		logger:            slog.Default(),
		observer:          NopObserver{},
	}
}

// Option configures a Dispatcher.
type Option func(*options)

// WithShowDelay sets how long the pointer must rest on a target before its
// tip shows.
func WithShowDelay(d time.Duration) Option {
	return func(o *options) {
		o.showDelay = d
	}
}

// WithHideDelay sets how long a tip lingers after the pointer leaves.
func WithHideDelay(d time.Duration) Option {
	return func(o *options) {
		o.hideDelay = d
	}
}

// WithDismissDelay sets how long an auto-hiding tip stays visible while the
// pointer rests on its target. Zero disables dismissal.
func WithDismissDelay(d time.Duration) Option {
	return func(o *options) {
		o.dismissDelay = d
	}
}

// WithQuickShowInterval sets the window after a hide during which the next
// tip shows without waiting for the show delay. Zero disables quick show
// except while a tip is still visible.
func WithQuickShowInterval(d time.Duration) Option {
	return func(o *options) {
		o.quickShowInterval = d
	}
}

// WithMouseOffset sets the default pointer offset.
func WithMouseOffset(p geom.Point) Option {
	return func(o *options) {
		o.mouseOffset = p
	}
}

// WithInterceptTitles turns native title attributes into tips.
func WithInterceptTitles(enabled bool) Option {
	return func(o *options) {
		o.interceptTitles = enabled
	}
}

// WithTrackMouse makes point-positioned tips follow the pointer.
func WithTrackMouse(enabled bool) Option {
	return func(o *options) {
		o.trackMouse = enabled
	}
}

// WithConvention sets the markup attribute names.
func WithConvention(c Convention) Option {
	return func(o *options) {
		o.convention = c
	}
}

// WithScope limits the dispatcher to the subtree rooted at h. The scope
// root itself never carries a tip.
func WithScope(h dom.Handle) Option {
	return func(o *options) {
		o.scope = h
	}
}

// WithClock sets the timer source. Its callbacks must run on the goroutine
// that drives the dispatcher.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
