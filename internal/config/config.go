package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/quicktip/internal/errors"
	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/panel"
	"github.com/vango-dev/quicktip/pkg/quicktip"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "quicktip.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultAttrPrefix prefixes the markup convention attributes.
	DefaultAttrPrefix = "data-"

	// DefaultQueueSize bounds each session's pending event queue.
	DefaultQueueSize = 64
)

// Config represents the complete quicktip.json configuration.
type Config struct {
	// Server contains HTTP listener settings.
	Server ServerConfig `json:"server"`

	// Tips contains dispatcher timing and behavior.
	Tips TipsConfig `json:"tips"`

	// Panel contains hint panel sizing.
	Panel PanelConfig `json:"panel"`

	// Catalog points at the tip registrations to load.
	Catalog CatalogConfig `json:"catalog,omitempty"`

	// Session contains per-connection settings.
	Session SessionConfig `json:"session"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool `json:"metrics"`

	// AllowedOrigins restricts WebSocket upgrades. Empty means same origin.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`

	// Debug makes the client log protocol traffic to the console.
	Debug bool `json:"debug,omitempty"`
}

// TipsConfig mirrors the dispatcher options. Durations are Go duration
// strings such as "500ms".
type TipsConfig struct {
	ShowDelay         string `json:"showDelay,omitempty"`
	HideDelay         string `json:"hideDelay,omitempty"`
	DismissDelay      string `json:"dismissDelay,omitempty"`
	QuickShowInterval string `json:"quickShowInterval,omitempty"`

	// MouseOffset is the [x, y] offset from the pointer for point-positioned
	// tips.
	MouseOffset []int `json:"mouseOffset,omitempty"`

	InterceptTitles bool `json:"interceptTitles"`
	TrackMouse      bool `json:"trackMouse"`

	// AttrPrefix prefixes the markup attribute names (qtip, qtitle, ...).
	AttrPrefix string `json:"attrPrefix,omitempty"`

	// Scope is the handle of the subtree tips are limited to.
	Scope string `json:"scope,omitempty"`
}

// PanelConfig contains hint panel sizing.
type PanelConfig struct {
	MinWidth  int    `json:"minWidth,omitempty"`
	MaxWidth  int    `json:"maxWidth,omitempty"`
	Constrain bool   `json:"constrain"`
	BaseClass string `json:"baseClass,omitempty"`
}

// CatalogConfig points at a tip catalog on disk or in S3. At most one source
// may be set.
type CatalogConfig struct {
	// Path is a YAML, JSON or TOML catalog file, relative to the config file.
	Path string `json:"path,omitempty"`

	// Watch reloads Path when it changes.
	Watch bool `json:"watch,omitempty"`

	// S3 is an s3://bucket/key URL.
	S3 string `json:"s3,omitempty"`

	// Region overrides the AWS region for S3.
	Region string `json:"region,omitempty"`
}

// SessionConfig contains per-connection settings.
type SessionConfig struct {
	// QueueSize bounds the number of pending events per session.
	QueueSize int `json:"queueSize,omitempty"`

	// PingInterval is how often the server pings idle clients.
	PingInterval string `json:"pingInterval,omitempty"`

	// WriteTimeout bounds each frame write.
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Metrics: true,
		},
		Tips: TipsConfig{
			ShowDelay:         quicktip.DefaultShowDelay.String(),
			HideDelay:         quicktip.DefaultHideDelay.String(),
			DismissDelay:      quicktip.DefaultDismissDelay.String(),
			QuickShowInterval: quicktip.DefaultQuickShowInterval.String(),
			MouseOffset:       []int{quicktip.DefaultMouseOffset.X, quicktip.DefaultMouseOffset.Y},
			InterceptTitles:   true,
			AttrPrefix:        DefaultAttrPrefix,
		},
		Panel: PanelConfig{
			MinWidth:  panel.DefaultMinWidth,
			MaxWidth:  panel.DefaultMaxWidth,
			Constrain: true,
			BaseClass: panel.DefaultBaseClass,
		},
		Session: SessionConfig{
			QueueSize:    DefaultQueueSize,
			PingInterval: "30s",
			WriteTimeout: "10s",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for quicktip.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ConfigNotFound).
				WithDetail("No quicktip.json found at " + path).
				WithSuggestion("Run 'quicktip config init' to create one")
		}
		return nil, errors.New(errors.ConfigInvalidJSON).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		e := errors.New(errors.ConfigInvalidJSON).
			WithDetail("Failed to parse quicktip.json: " + err.Error()).
			WithSuggestion("Check that quicktip.json is valid JSON")
		if syn, ok := err.(*json.SyntaxError); ok {
			line, col := position(data, syn.Offset)
			e.WithLocation(path, line, col)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.ConfigWriteFailed).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.ConfigWriteFailed).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	// Server
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}

	// Tips
	if c.Tips.ShowDelay == "" {
		c.Tips.ShowDelay = d.Tips.ShowDelay
	}
	if c.Tips.HideDelay == "" {
		c.Tips.HideDelay = d.Tips.HideDelay
	}
	if c.Tips.DismissDelay == "" {
		c.Tips.DismissDelay = d.Tips.DismissDelay
	}
	if c.Tips.QuickShowInterval == "" {
		c.Tips.QuickShowInterval = d.Tips.QuickShowInterval
	}
	if c.Tips.MouseOffset == nil {
		c.Tips.MouseOffset = d.Tips.MouseOffset
	}
	if c.Tips.AttrPrefix == "" {
		c.Tips.AttrPrefix = d.Tips.AttrPrefix
	}

	// Panel
	if c.Panel.MinWidth == 0 {
		c.Panel.MinWidth = d.Panel.MinWidth
	}
	if c.Panel.MaxWidth == 0 {
		c.Panel.MaxWidth = d.Panel.MaxWidth
	}
	if c.Panel.BaseClass == "" {
		c.Panel.BaseClass = d.Panel.BaseClass
	}

	// Session
	if c.Session.QueueSize == 0 {
		c.Session.QueueSize = d.Session.QueueSize
	}
	if c.Session.PingInterval == "" {
		c.Session.PingInterval = d.Session.PingInterval
	}
	if c.Session.WriteTimeout == "" {
		c.Session.WriteTimeout = d.Session.WriteTimeout
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", "Port must be between 0 and 65535")
	}

	durations := []struct {
		field, value string
	}{
		{"tips.showDelay", c.Tips.ShowDelay},
		{"tips.hideDelay", c.Tips.HideDelay},
		{"tips.dismissDelay", c.Tips.DismissDelay},
		{"tips.quickShowInterval", c.Tips.QuickShowInterval},
		{"session.pingInterval", c.Session.PingInterval},
		{"session.writeTimeout", c.Session.WriteTimeout},
	}
	for _, d := range durations {
		if _, err := parseDuration(d.value); err != nil {
			return invalid(d.field, fmt.Sprintf("%q is not a valid duration", d.value)).Wrap(err)
		}
	}

	if n := len(c.Tips.MouseOffset); n != 0 && n != 2 {
		return invalid("tips.mouseOffset", "Mouse offset must be an [x, y] pair")
	}
	if c.Panel.MinWidth < 0 || c.Panel.MaxWidth < c.Panel.MinWidth {
		return invalid("panel", "Widths must satisfy 0 <= minWidth <= maxWidth")
	}
	if c.Session.QueueSize < 1 {
		return invalid("session.queueSize", "Queue size must be at least 1")
	}
	if c.Catalog.Path != "" && c.Catalog.S3 != "" {
		return invalid("catalog", "Set either catalog.path or catalog.s3, not both")
	}
	return nil
}

func invalid(field, detail string) *errors.Error {
	return errors.New(errors.ConfigInvalidValue).
		WithDetail(detail).
		WithSuggestion("Fix " + field + " in " + ConfigFileName)
}

// parseDuration parses a Go duration string and rejects negative values.
// The empty string is zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// duration returns the parsed value of a validated duration field.
func duration(s string) time.Duration {
	d, _ := parseDuration(s)
	return d
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// PingInterval returns the parsed session ping interval.
func (c *Config) PingInterval() time.Duration {
	return duration(c.Session.PingInterval)
}

// WriteTimeout returns the parsed session write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return duration(c.Session.WriteTimeout)
}

// DispatcherOptions translates the tips section into dispatcher options.
// Call Validate first; malformed durations are treated as zero.
func (c *Config) DispatcherOptions() []quicktip.Option {
	opts := []quicktip.Option{
		quicktip.WithShowDelay(duration(c.Tips.ShowDelay)),
		quicktip.WithHideDelay(duration(c.Tips.HideDelay)),
		quicktip.WithDismissDelay(duration(c.Tips.DismissDelay)),
		quicktip.WithQuickShowInterval(duration(c.Tips.QuickShowInterval)),
		quicktip.WithInterceptTitles(c.Tips.InterceptTitles),
		quicktip.WithTrackMouse(c.Tips.TrackMouse),
		quicktip.WithConvention(quicktip.DefaultConvention(c.Tips.AttrPrefix)),
	}
	if len(c.Tips.MouseOffset) == 2 {
		opts = append(opts, quicktip.WithMouseOffset(geom.Pt(c.Tips.MouseOffset[0], c.Tips.MouseOffset[1])))
	}
	if c.Tips.Scope != "" {
		opts = append(opts, quicktip.WithScope(dom.Handle(c.Tips.Scope)))
	}
	return opts
}

// PanelConfig returns the hint panel settings.
func (c *Config) PanelConfig() panel.Config {
	pc := panel.DefaultConfig()
	pc.MinWidth = c.Panel.MinWidth
	pc.MaxWidth = c.Panel.MaxWidth
	pc.Constrain = c.Panel.Constrain
	pc.BaseClass = c.Panel.BaseClass
	return pc
}

// CatalogPath returns the absolute path to the catalog file, or "".
func (c *Config) CatalogPath() string {
	path := c.Catalog.Path
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
