package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    ConfigInvalidJSON,
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "catalog error",
			code:    CatalogInvalidDelay,
			wantMsg: "Invalid delay",
			wantCat: CategoryCatalog,
		},
		{
			name:    "protocol error",
			code:    ProtocolUnexpected,
			wantMsg: "Unexpected frame type",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown command %q", "serv")
	if err.Message != `unknown command "serv"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `unknown command "serv"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestError_Error(t *testing.T) {
	err := New(CatalogNotFound)
	if got, want := err.Error(), "E201: Tip catalog not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.Wrap(fs.ErrNotExist)
	if got, want := err.Error(), "E201: Tip catalog not found: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := New(ConfigNotFound).Wrap(fs.ErrNotExist)
	wrapped := fmt.Errorf("loading: %w", err)

	if !HasCode(wrapped, ConfigNotFound) {
		t.Error("HasCode should see through fmt.Errorf")
	}
	if HasCode(wrapped, ConfigInvalidJSON) {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(fs.ErrNotExist, ConfigNotFound) {
		t.Error("HasCode matched a plain error")
	}
	if !stderrors.Is(wrapped, fs.ErrNotExist) {
		t.Error("errors.Is should reach the wrapped fs error")
	}
}

func TestWithLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tips.yaml")
	content := "tips:\n  - targets: [save]\n    text: Save\n    showDelay: soon\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New(CatalogInvalidDelay).WithLocation(path, 4, 16)
	if err.Location.String() != path+":4:16" {
		t.Errorf("Location = %q", err.Location.String())
	}
	if err.ContextStart != 2 {
		t.Errorf("ContextStart = %d, want 2", err.ContextStart)
	}
	if len(err.Context) != 3 || err.Context[2] != "    showDelay: soon" {
		t.Errorf("Context = %q", err.Context)
	}

	// Near the top of the file the window starts at line 1.
	top := New(CatalogParse).WithLocation(path, 1, 0)
	if top.ContextStart != 1 || top.Context[0] != "tips:" {
		t.Errorf("top context = %d %q", top.ContextStart, top.Context)
	}

	missing := New(CatalogParse).WithLocation(filepath.Join(t.TempDir(), "nope"), 3, 0)
	if missing.Context != nil {
		t.Errorf("Context = %q, want nil for a missing file", missing.Context)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, ServerListen) != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New(ServerUpgrade)
	if FromError(e, ServerListen) != e {
		t.Error("FromError should return *Error as-is")
	}

	result := FromError(fs.ErrPermission, ServerListen)
	if result.Wrapped != fs.ErrPermission || result.Code != ServerListen {
		t.Errorf("FromError() = %+v", result)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil location", nil, ""},
		{"with column", &Location{File: "tips.yaml", Line: 10, Column: 5}, "tips.yaml:10:5"},
		{"without column", &Location{File: "tips.yaml", Line: 10}, "tips.yaml:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	path := filepath.Join(t.TempDir(), "tips.yaml")
	content := "tips:\n  - targets: [save]\n    text: Save\n    showDelay: soon\n    hideDelay: 1s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	formatted := New(CatalogInvalidDelay).
		WithLocation(path, 4, 16).
		WithSuggestion("use a Go duration such as 750ms").
		Wrap(fmt.Errorf(`time: invalid duration "soon"`)).
		Format()

	for _, want := range []string{
		"ERROR E204: Invalid delay",
		path + ":4:16",
		"→    4 │     showDelay: soon",
		"       3 │     text: Save",
		"Hint: use a Go duration such as 750ms",
		`Caused by: time: invalid duration "soon"`,
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CatalogInvalidEntry)
	err.Location = &Location{File: "tips.yaml", Line: 10, Column: 5}

	want := "tips.yaml:10:5: E203: Invalid tip entry"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CatalogInvalidEntry).Wrap(fmt.Errorf("no targets"))
	err.Location = &Location{File: "tips.yaml", Line: 10, Column: 5}
	json := err.FormatJSON()

	for _, want := range []string{
		`"code":"E203"`,
		`"category":"catalog"`,
		`"message":"Invalid tip entry"`,
		`"location":{"file":"tips.yaml","line":10,"column":5}`,
		`"cause":"no targets"`,
	} {
		if !strings.Contains(json, want) {
			t.Errorf("FormatJSON() missing %s: %s", want, json)
		}
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("serve: %w", New(ServerListen)))
	if !strings.Contains(buf.String(), "ERROR E401: Could not start server") {
		t.Errorf("PrintError() = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("plain failure"))
	if got := buf.String(); got != "\nERROR: plain failure\n\n" {
		t.Errorf("PrintError() = %q", got)
	}
}

func TestRegistryCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) != len(registry) {
		t.Fatalf("GetAllCodes() returned %d codes, want %d", len(codes), len(registry))
	}

	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s incomplete: %+v", code, tmpl)
		}
		if !strings.HasPrefix(code, "E") || len(code) != 4 {
			t.Errorf("malformed code %q", code)
		}
	}

	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("short text", 100); len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}
	if got := wrapText("this is a longer text that should be wrapped", 20); len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}
	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
