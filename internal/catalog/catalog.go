package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/quicktip/internal/errors"
	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/quicktip"
)

// Format is a catalog encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat picks the format from a file name or object key.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.CatalogUnknownFormat).WithDetailf("Cannot tell the format of %q from its extension.", name)
}

// Entry is one registration in a catalog file.
type Entry struct {
	Targets      []string `yaml:"targets" json:"targets" toml:"targets"`
	Text         string   `yaml:"text" json:"text" toml:"text"`
	Title        string   `yaml:"title,omitempty" json:"title,omitempty" toml:"title,omitempty"`
	Width        int      `yaml:"width,omitempty" json:"width,omitempty" toml:"width,omitempty"`
	AutoHide     any      `yaml:"autoHide,omitempty" json:"autoHide,omitempty" toml:"autoHide,omitempty"`
	Class        string   `yaml:"class,omitempty" json:"class,omitempty" toml:"class,omitempty"`
	Align        string   `yaml:"align,omitempty" json:"align,omitempty" toml:"align,omitempty"`
	Anchor       string   `yaml:"anchor,omitempty" json:"anchor,omitempty" toml:"anchor,omitempty"`
	ShowDelay    string   `yaml:"showDelay,omitempty" json:"showDelay,omitempty" toml:"showDelay,omitempty"`
	HideDelay    string   `yaml:"hideDelay,omitempty" json:"hideDelay,omitempty" toml:"hideDelay,omitempty"`
	DismissDelay string   `yaml:"dismissDelay,omitempty" json:"dismissDelay,omitempty" toml:"dismissDelay,omitempty"`
	MouseOffset  []int    `yaml:"mouseOffset,omitempty" json:"mouseOffset,omitempty" toml:"mouseOffset,omitempty"`

	// line is the entry's line in a YAML source, 0 when unknown.
	line int
}

var entryKeys = []string{
	"targets", "text", "title", "width", "autoHide", "class", "align",
	"anchor", "showDelay", "hideDelay", "dismissDelay", "mouseOffset",
}

// UnmarshalYAML decodes an entry, remembering its line and rejecting
// unknown keys.
func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if !slices.Contains(entryKeys, key.Value) {
				return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
			}
		}
	}
	type plain Entry
	if err := n.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line = n.Line
	return nil
}

// Line returns the entry's line in its YAML source, or 0.
func (e *Entry) Line() int {
	return e.line
}

// document is the top-level catalog shape.
type document struct {
	Tips []Entry `yaml:"tips" json:"tips" toml:"tips"`
}

// Catalog is a validated set of tip registrations.
type Catalog struct {
	// Source names where the catalog came from, for messages.
	Source  string
	Entries []Entry
}

// Parse decodes and validates a catalog. name is used in error locations.
func Parse(data []byte, format Format, name string) (*Catalog, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, parseError(name, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, parseError(name, err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, parseError(name, err)
		}
	default:
		return nil, errors.New(errors.CatalogUnknownFormat).WithDetailf("Unsupported catalog format %q.", format)
	}

	c := &Catalog{Source: name, Entries: doc.Tips}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseError(name string, err error) *errors.Error {
	return errors.New(errors.CatalogParse).
		WithDetailf("Failed to parse %s.", name).
		Wrap(err)
}

// Validate checks every entry and returns the first problem found.
func (c *Catalog) Validate() error {
	for i := range c.Entries {
		if err := c.validateEntry(i); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) validateEntry(i int) error {
	e := &c.Entries[i]
	fail := func(code, format string, args ...any) error {
		err := errors.New(code).WithDetailf("Tip %d: "+format, append([]any{i + 1}, args...)...)
		if e.line > 0 {
			err.WithLocation(c.Source, e.line, 0)
		}
		return err
	}

	if len(e.Targets) == 0 || slices.Contains(e.Targets, "") {
		return fail(errors.CatalogInvalidEntry, "targets must be a non-empty list of element ids.")
	}
	if strings.TrimSpace(e.Text) == "" {
		return fail(errors.CatalogInvalidEntry, "text is empty.")
	}
	if e.Width < 0 {
		return fail(errors.CatalogInvalidEntry, "width %d is negative.", e.Width)
	}
	if n := len(e.MouseOffset); n != 0 && n != 2 {
		return fail(errors.CatalogInvalidEntry, "mouseOffset must be an [x, y] pair.")
	}
	if _, err := hideMode(e.AutoHide); err != nil {
		return fail(errors.CatalogInvalidEntry, "autoHide %v must be true, false or %q.", e.AutoHide, quicktip.HideUser)
	}
	for _, d := range []struct{ field, value string }{
		{"showDelay", e.ShowDelay},
		{"hideDelay", e.HideDelay},
		{"dismissDelay", e.DismissDelay},
	} {
		if _, err := parseDelay(d.value); err != nil {
			return fail(errors.CatalogInvalidDelay, "%s %q: %v.", d.field, d.value, err)
		}
	}
	if e.Align != "" {
		if _, err := geom.ParseAlign(e.Align); err != nil {
			return fail(errors.CatalogInvalidOptions, "align %q: %v.", e.Align, err)
		}
	}
	if e.Anchor != "" {
		if _, ok := geom.ParseSide(e.Anchor); !ok {
			return fail(errors.CatalogInvalidOptions, "anchor %q is not a side.", e.Anchor)
		}
	}
	return nil
}

// hideMode maps an autoHide value to a HideMode. false and "user" keep the
// tip up until the pointer leaves; true and unset dismiss it on a timer.
func hideMode(v any) (quicktip.HideMode, error) {
	switch v := v.(type) {
	case nil:
		return quicktip.HideAuto, nil
	case bool:
		if v {
			return quicktip.HideAuto, nil
		}
		return quicktip.HideUser, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "true":
			return quicktip.HideAuto, nil
		case string(quicktip.HideUser), "false":
			return quicktip.HideUser, nil
		}
	}
	return quicktip.HideAuto, fmt.Errorf("invalid autoHide %v", v)
}

// parseDelay parses an optional non-negative duration. The empty string
// means "use the dispatcher default" and yields nil.
func parseDelay(s string) (*time.Duration, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	if d < 0 {
		return nil, fmt.Errorf("negative duration")
	}
	return &d, nil
}

// Config converts a validated entry into a dispatcher registration.
func (e *Entry) Config() quicktip.TipConfig {
	cfg := quicktip.TipConfig{
		Text:     e.Text,
		Title:    e.Title,
		Width:    e.Width,
		Cls:      e.Class,
		Align:    e.Align,
		Anchor:   e.Anchor,
	}
	for _, t := range e.Targets {
		cfg.Targets = append(cfg.Targets, dom.Handle(t))
	}
	cfg.AutoHide, _ = hideMode(e.AutoHide)
	cfg.ShowDelay, _ = parseDelay(e.ShowDelay)
	cfg.HideDelay, _ = parseDelay(e.HideDelay)
	cfg.DismissDelay, _ = parseDelay(e.DismissDelay)
	if len(e.MouseOffset) == 2 {
		p := geom.Pt(e.MouseOffset[0], e.MouseOffset[1])
		cfg.MouseOffset = &p
	}
	return cfg
}

// Configs returns the registrations in catalog order.
func (c *Catalog) Configs() []quicktip.TipConfig {
	cfgs := make([]quicktip.TipConfig, 0, len(c.Entries))
	for i := range c.Entries {
		cfgs = append(cfgs, c.Entries[i].Config())
	}
	return cfgs
}

// Targets returns every target handle in the catalog, without duplicates.
func (c *Catalog) Targets() []dom.Handle {
	if c == nil {
		return nil
	}
	var hs []dom.Handle
	for _, e := range c.Entries {
		for _, t := range e.Targets {
			if h := dom.Handle(t); !slices.Contains(hs, h) {
				hs = append(hs, h)
			}
		}
	}
	return hs
}

// Registrar is the part of the dispatcher a catalog is applied to.
type Registrar interface {
	Register(cfgs ...quicktip.TipConfig)
	Unregister(h dom.Handle)
}

// Apply registers c with r, first unregistering the targets of prev that c
// no longer mentions. prev may be nil.
func (c *Catalog) Apply(r Registrar, prev *Catalog) {
	keep := c.Targets()
	for _, h := range prev.Targets() {
		if !slices.Contains(keep, h) {
			r.Unregister(h)
		}
	}
	r.Register(c.Configs()...)
}
