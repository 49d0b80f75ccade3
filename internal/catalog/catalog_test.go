package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/quicktip/internal/errors"
	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/quicktip"
	"github.com/vango-dev/quicktip/pkg/tiptest"
	"github.com/vango-dev/quicktip/pkg/vdom"
)

const sampleYAML = `tips:
  - targets: [save, save-as]
    text: Save the document
    title: Save
    anchor: top
  - targets: [delete]
    text: Delete permanently
    autoHide: User
    class: danger
    width: 180
    showDelay: 1s
    dismissDelay: 0s
    mouseOffset: [4, 8]
`

func TestParseYAML(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), FormatYAML, "tips.yaml")
	require.NoError(t, err)
	require.Len(t, c.Entries, 2)

	assert.Equal(t, "tips.yaml", c.Source)
	assert.Equal(t, 2, c.Entries[0].Line())
	assert.Equal(t, 6, c.Entries[1].Line())

	cfgs := c.Configs()
	require.Len(t, cfgs, 2)

	save := cfgs[0]
	assert.Equal(t, []dom.Handle{"save", "save-as"}, save.Targets)
	assert.Equal(t, "Save the document", save.Text)
	assert.Equal(t, "Save", save.Title)
	assert.Equal(t, "top", save.Anchor)
	assert.Nil(t, save.ShowDelay)
	assert.Nil(t, save.MouseOffset)

	del := cfgs[1]
	assert.Equal(t, quicktip.HideUser, del.AutoHide)
	assert.Equal(t, "danger", del.Cls)
	assert.Equal(t, 180, del.Width)
	require.NotNil(t, del.ShowDelay)
	assert.Equal(t, time.Second, *del.ShowDelay)
	require.NotNil(t, del.DismissDelay)
	assert.Equal(t, time.Duration(0), *del.DismissDelay)
	require.NotNil(t, del.MouseOffset)
	assert.Equal(t, geom.Pt(4, 8), *del.MouseOffset)
}

func TestParseJSON(t *testing.T) {
	data := `{"tips": [{"targets": ["open"], "text": "Open a file", "align": "tl-bl?"}]}`
	c, err := Parse([]byte(data), FormatJSON, "tips.json")
	require.NoError(t, err)
	require.Len(t, c.Entries, 1)
	assert.Equal(t, "tl-bl?", c.Configs()[0].Align)
	assert.Zero(t, c.Entries[0].Line())
}

func TestParseTOML(t *testing.T) {
	data := `
[[tips]]
targets = ["share", "archive"]
text = "Send a link"
anchor = "bottom"
mouseOffset = [2, 2]

[[tips]]
targets = ["print"]
text = "Print"
showDelay = "250ms"
`
	c, err := Parse([]byte(data), FormatTOML, "tips.toml")
	require.NoError(t, err)
	require.Len(t, c.Entries, 2)
	assert.Equal(t, []dom.Handle{"share", "archive", "print"}, c.Targets())

	cfgs := c.Configs()
	assert.Equal(t, "bottom", cfgs[0].Anchor)
	require.NotNil(t, cfgs[0].MouseOffset)
	assert.Equal(t, geom.Pt(2, 2), *cfgs[0].MouseOffset)
	require.NotNil(t, cfgs[1].ShowDelay)
	assert.Equal(t, 250*time.Millisecond, *cfgs[1].ShowDelay)
}

func TestParseAutoHide(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   quicktip.HideMode
	}{
		{"yaml false", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    autoHide: false\n", quicktip.HideUser},
		{"yaml true", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    autoHide: true\n", quicktip.HideAuto},
		{"yaml unset", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n", quicktip.HideAuto},
		{"json false", FormatJSON, `{"tips": [{"targets": ["a"], "text": "x", "autoHide": false}]}`, quicktip.HideUser},
		{"json user", FormatJSON, `{"tips": [{"targets": ["a"], "text": "x", "autoHide": "user"}]}`, quicktip.HideUser},
		{"toml false", FormatTOML, "[[tips]]\ntargets = [\"a\"]\ntext = \"x\"\nautoHide = false\n", quicktip.HideUser},
		{"toml true", FormatTOML, "[[tips]]\ntargets = [\"a\"]\ntext = \"x\"\nautoHide = true\n", quicktip.HideAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.data), tt.format, "tips")
			require.NoError(t, err)
			require.Len(t, c.Entries, 1)
			assert.Equal(t, tt.want, c.Configs()[0].AutoHide)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil, FormatYAML, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
	assert.Empty(t, c.Targets())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		code   string
		line   int
	}{
		{"bad yaml", FormatYAML, "tips: [", errors.CatalogParse, 0},
		{"unknown top-level key", FormatYAML, "tip: []\n", errors.CatalogParse, 0},
		{"unknown entry key", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    showdelay: 1s\n", errors.CatalogParse, 0},
		{"unknown json key", FormatJSON, `{"tips": [{"targets": ["a"], "text": "x", "colour": "red"}]}`, errors.CatalogParse, 0},
		{"no targets", FormatYAML, "tips:\n  - text: x\n", errors.CatalogInvalidEntry, 2},
		{"empty target", FormatYAML, "tips:\n  - targets: ['']\n    text: x\n", errors.CatalogInvalidEntry, 2},
		{"empty text", FormatYAML, "tips:\n  - targets: [a]\n    text: '  '\n", errors.CatalogInvalidEntry, 2},
		{"negative width", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    width: -1\n", errors.CatalogInvalidEntry, 2},
		{"offset arity", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    mouseOffset: [1, 2, 3]\n", errors.CatalogInvalidEntry, 2},
		{"bad hide mode", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    autoHide: never\n", errors.CatalogInvalidEntry, 2},
		{"numeric hide mode", FormatJSON, `{"tips": [{"targets": ["a"], "text": "x", "autoHide": 1}]}`, errors.CatalogInvalidEntry, 0},
		{"bad delay", FormatYAML, "tips:\n  - targets: [a]\n    text: ok\n  - targets: [b]\n    text: x\n    hideDelay: soon\n", errors.CatalogInvalidDelay, 4},
		{"negative delay", FormatJSON, `{"tips": [{"targets": ["a"], "text": "x", "showDelay": "-1s"}]}`, errors.CatalogInvalidDelay, 0},
		{"bad align", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    align: middle\n", errors.CatalogInvalidOptions, 2},
		{"bad anchor", FormatYAML, "tips:\n  - targets: [a]\n    text: x\n    anchor: north\n", errors.CatalogInvalidOptions, 2},
		{"unknown toml key", FormatTOML, "[[tips]]\ntargets = [\"a\"]\ntext = \"x\"\ncolour = \"red\"\n", errors.CatalogParse, 0},
		{"bad format", Format("ini"), "", errors.CatalogUnknownFormat, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.format, "tips")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tc.code), "got %v, want %s", err, tc.code)

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			if tc.line > 0 {
				require.NotNil(t, e.Location)
				assert.Equal(t, tc.line, e.Location.Line)
			} else {
				assert.Nil(t, e.Location)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"tips.yaml":          FormatYAML,
		"dir/tips.YML":       FormatYAML,
		"tips.json":          FormatJSON,
		"catalogs/prod.json": FormatJSON,
		"tips.toml":          FormatTOML,
	} {
		got, err := DetectFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := DetectFormat("tips.txt")
	assert.True(t, errors.HasCode(err, errors.CatalogUnknownFormat))
}

type registrar struct {
	registered   []quicktip.TipConfig
	unregistered []dom.Handle
}

func (r *registrar) Register(cfgs ...quicktip.TipConfig) { r.registered = append(r.registered, cfgs...) }
func (r *registrar) Unregister(h dom.Handle)              { r.unregistered = append(r.unregistered, h) }

func TestApply(t *testing.T) {
	prev, err := Parse([]byte(sampleYAML), FormatYAML, "tips.yaml")
	require.NoError(t, err)
	assert.Equal(t, []dom.Handle{"save", "save-as", "delete"}, prev.Targets())

	next, err := Parse([]byte("tips:\n  - targets: [save, print]\n    text: Save it\n"), FormatYAML, "tips.yaml")
	require.NoError(t, err)

	r := &registrar{}
	next.Apply(r, prev)

	assert.Equal(t, []dom.Handle{"save-as", "delete"}, r.unregistered)
	require.Len(t, r.registered, 1)
	assert.Equal(t, "Save it", r.registered[0].Text)

	first := &registrar{}
	prev.Apply(first, nil)
	assert.Empty(t, first.unregistered)
	assert.Len(t, first.registered, 2)
}

func TestApplyToDispatcher(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), FormatYAML, "tips.yaml")
	require.NoError(t, err)

	env := tiptest.NewEnv(vdom.Body(vdom.Button(vdom.ID("save-as"), vdom.Text("Save as"))))
	c.Apply(env.Dispatcher, nil)
	assert.Equal(t, 3, env.Dispatcher.Len())

	env.Over("save-as", "")
	env.Advance(quicktip.DefaultShowDelay)
	require.True(t, env.Visible())

	st := env.Panel.State()
	assert.Equal(t, "Save the document", st.Text)
	assert.Equal(t, "Save", st.Title)
}
