package server

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Config configures the HTTP server and its sessions.
type Config struct {
	// Address is the listen address. Default: ":3000".
	Address string

	// Title is the page title. Default: "quicktip".
	Title string

	// ReadTimeout is the maximum time to wait for a client frame. The
	// client answers pings, so this must exceed PingInterval.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// PingInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	PingInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is passed to http.Server. Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// QueueSize is the number of client frames a session buffers before
	// it starts rejecting them. Default: 64.
	QueueSize int

	// AllowedOrigins lists the origins allowed to open a WebSocket. Empty
	// means same-origin only; "*" allows any origin.
	AllowedOrigins []string

	// Debug makes the client log protocol traffic and disables client
	// caching.
	Debug bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":3000",
		Title:             "quicktip",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		PingInterval:      30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxMessageSize:    64 * 1024,
		QueueSize:         64,
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	config := *c
	if config.Address == "" {
		config.Address = defaults.Address
	}
	if config.Title == "" {
		config.Title = defaults.Title
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.PingInterval == 0 {
		config.PingInterval = defaults.PingInterval
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if config.ReadHeaderTimeout == 0 {
		config.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = defaults.MaxMessageSize
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	return &config
}

// checkOrigin returns the WebSocket origin policy for c.
func (c *Config) checkOrigin() func(r *http.Request) bool {
	allowed := c.AllowedOrigins
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if slices.Contains(allowed, "*") {
			return true
		}
		if len(allowed) > 0 {
			return slices.ContainsFunc(allowed, func(o string) bool {
				return strings.EqualFold(strings.TrimSuffix(o, "/"), origin)
			})
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}
