package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
)

func renderNothing([]types.Todo) ([]byte, error) { return nil, nil }

func TestRegister(t *testing.T) {
	// Save original registry
	originalRegistry := registry
	defer func() { registry = originalRegistry }()

	registry = make(map[string]*ListFormat)

	tests := []struct {
		name      string
		format    *ListFormat
		wantError bool
		errorMsg  string
	}{
		{
			name:   "valid format",
			format: &ListFormat{Name: "test-format", Extension: ".test", Render: renderNothing},
		},
		{
			name:      "invalid name with uppercase",
			format:    &ListFormat{Name: "TestFormat", Extension: ".test", Render: renderNothing},
			wantError: true,
			errorMsg:  "invalid format name",
		},
		{
			name:      "invalid name with special chars",
			format:    &ListFormat{Name: "test@format", Extension: ".test", Render: renderNothing},
			wantError: true,
			errorMsg:  "invalid format name",
		},
		{
			name:      "empty name",
			format:    &ListFormat{Name: "", Extension: ".test", Render: renderNothing},
			wantError: true,
			errorMsg:  "invalid format name",
		},
		{
			name:      "missing renderer",
			format:    &ListFormat{Name: "silent", Extension: ".s"},
			wantError: true,
			errorMsg:  "no renderer",
		},
		{
			name:      "duplicate name",
			format:    &ListFormat{Name: "test-format", Extension: ".other", Render: renderNothing},
			wantError: true,
			errorMsg:  "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Register(tt.format)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	t.Run("extension without dot is normalized", func(t *testing.T) {
		f := &ListFormat{Name: "nodot", Extension: "nd", Render: renderNothing}
		if err := Register(f); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Extension != ".nd" {
			t.Errorf("expected extension .nd, got %q", f.Extension)
		}
	})
}

func TestBuiltins(t *testing.T) {
	if diff := cmp.Diff([]string{"json", "markdown", "plain", "yaml"}, List()); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"plain", "Markdown", "json", "yaml"} {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%q): %v", name, err)
		}
	}

	_, err := Get("docx")
	if err == nil || !strings.Contains(err.Error(), "available: json, markdown, plain, yaml") {
		t.Errorf("expected unknown format error listing formats, got %v", err)
	}
}

func TestByExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"todos.md", "markdown"},
		{"out/TODOS.JSON", "json"},
		{"list.yaml", "yaml"},
		{"list.txt", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, ok := ByExtension(tt.path)
			if !ok {
				t.Fatalf("no format for %s", tt.path)
			}
			if f.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, f.Name)
			}
		})
	}

	if _, ok := ByExtension("noext"); ok {
		t.Error("expected no match without extension")
	}
}

func TestDecodeRenderOnly(t *testing.T) {
	_, err := PlainText.Decode([]byte("[ ] 1. a\n"))
	if !errors.Is(err, ErrParseUnsupported) {
		t.Errorf("expected ErrParseUnsupported, got %v", err)
	}
}
