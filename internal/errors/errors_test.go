package errors

import (
	stderrors "errors"
	"fmt"
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
			name:    "hydration error",
			code:    "E041",
			wantMsg: "Hydration mismatch: element tag differs",
			wantCat: CategoryHydration,
		},
		{
			name:    "runtime error",
			code:    "E051",
			wantMsg: "Invalid list index",
			wantCat: CategoryRuntime,
		},
		{
			name:    "template error",
			code:    "E151",
			wantMsg: "Unknown node kind",
			wantCat: CategoryTemplate,
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
	err := Newf(CategoryCLI, "file %q not found", "page.yaml")
	if err.Message != `file "page.yaml" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "page.yaml" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestTetherError_Error(t *testing.T) {
	err := New("E043")
	want := "E043: Hydration mismatch: missing node"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.WithDetail("expected 2 children, found 1")
	want = "E043: Hydration mismatch: missing node: expected 2 children, found 1"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &TetherError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestTetherError_WithLocation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "page.yaml")
	content := `- element: div
  children:
    - text: Hi
    - bogus: true
    - text: Ho
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E151").WithLocation(tmpFile, 4, 7)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.File != tmpFile {
		t.Errorf("Location.File = %q, want %q", err.Location.File, tmpFile)
	}
	if err.Location.Line != 4 || err.Location.Column != 7 {
		t.Errorf("Location = %d:%d, want 4:7", err.Location.Line, err.Location.Column)
	}
	if len(err.Context) != 4 {
		t.Errorf("len(Context) = %d, want 4", len(err.Context))
	}
}

func TestTetherError_Wrap(t *testing.T) {
	inner := fmt.Errorf("disk on fire")
	err := New("E120").Wrap(inner)

	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	original := New("E052")
	if FromError(original, "E120") != original {
		t.Error("FromError should return TetherError unchanged")
	}

	wrapped := FromError(fmt.Errorf("boom"), "E120")
	if wrapped.Code != "E120" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v, want E120 wrapping the cause", wrapped)
	}
}

func TestHasCode(t *testing.T) {
	base := New("E041")
	wrapped := fmt.Errorf("hydrate: %w", base)
	chained := New("E120").Wrap(New("E052"))

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"direct", base, "E041", true},
		{"fmt wrapped", wrapped, "E041", true},
		{"other code", wrapped, "E040", false},
		{"inner of chain", chained, "E052", true},
		{"plain error", fmt.Errorf("nope"), "E041", false},
		{"nil", nil, "E041", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}

	if CodeOf(wrapped) != "E041" {
		t.Errorf("CodeOf() = %q, want E041", CodeOf(wrapped))
	}
}

func TestLocation_String(t *testing.T) {
	var nilLoc *Location
	if nilLoc.String() != "" {
		t.Error("nil location should format as empty string")
	}
	if got := (&Location{File: "a.yaml", Line: 3}).String(); got != "a.yaml:3" {
		t.Errorf("String() = %q, want a.yaml:3", got)
	}
	if got := (&Location{File: "a.yaml", Line: 3, Column: 9}).String(); got != "a.yaml:3:9" {
		t.Errorf("String() = %q, want a.yaml:3:9", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpFile := filepath.Join(t.TempDir(), "page.yaml")
	content := "- element: table\n  children:\n    - element: div\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E041").
		WithLocation(tmpFile, 3, 7).
		WithSuggestion("Wrap table rows in <tbody>")

	formatted := err.Format()

	for _, want := range []string{"E041", "element tag differs", tmpFile, "Hint:", "→", "Invalid nesting"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() should contain %q, got:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E051").WithDetail("index 4 out of range")
	err.Location = &Location{File: "page.yaml", Line: 10, Column: 5}

	want := "page.yaml:10:5: E051: Invalid list index (index 4 out of range)"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Fprint(&b, New("E043"))
	if !strings.Contains(b.String(), "ERROR E043") {
		t.Errorf("Fprint(TetherError) = %q", b.String())
	}

	b.Reset()
	Fprint(&b, fmt.Errorf("plain"))
	if !strings.Contains(b.String(), "ERROR: plain") {
		t.Errorf("Fprint(error) = %q", b.String())
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("GetAllCodes() not sorted: %v", codes)
		}
	}

	if _, ok := GetTemplate("E040"); !ok {
		t.Error("E040 should exist")
	}
	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}

	Register("E999", ErrorTemplate{Category: CategoryRuntime, Message: "Custom test error"})
	defer delete(registry, "E999")
	if New("E999").Message != "Custom test error" {
		t.Error("Register should make the code available to New")
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
