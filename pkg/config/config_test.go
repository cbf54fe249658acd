package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

func TestParse_YAMLAndJSON(t *testing.T) {
	want := Config{
		TagKey:   "fmt",
		Renderer: "yaml",
		Nested:   true,
		MaxDepth: 3,
		Color:    true,
		Redact:   []string{"password"},
		LogLevel: "debug",
	}

	cases := []struct {
		name   string
		source string
		data   string
	}{
		{
			name:   "yaml",
			source: "structfmt.yaml",
			data:   "tagKey: fmt\nrenderer: YAML\nnested: true\nmaxDepth: 3\ncolor: true\nredact: [password, \" \"]\nlogLevel: debug\n",
		},
		{
			name:   "json",
			source: "structfmt.json",
			data:   `{"tagKey":"fmt","renderer":"yaml","nested":true,"maxDepth":3,"color":true,"redact":["password"],"logLevel":"DEBUG"}`,
		},
		{
			name:   "yaml without extension",
			source: "structfmt",
			data:   "tagKey: fmt\nrenderer: yaml\nnested: true\nmaxDepth: 3\ncolor: true\nredact:\n  - password\nlogLevel: debug\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse([]byte(tc.data), tc.source)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_AppliesDefaults(t *testing.T) {
	got, err := Parse([]byte("nested: true\n"), "partial.yml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Default()
	want.Nested = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative depth": "maxDepth: -1\n",
		"bad level":      "logLevel: loud\n",
		"bad tag key":    "tagKey: \"a b\"\n",
	}
	for name, data := range cases {
		data := data
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(data), "bad.yaml"); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("want ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := Parse([]byte("  "), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty file")
	}
	if _, err := Parse([]byte("renderer: [unterminated"), "broken.yaml"); err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("want parse error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "structfmt.yaml")
	if err := os.WriteFile(path, []byte("renderer: html\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Renderer != "html" {
		t.Fatalf("want renderer html, got %q", cfg.Renderer)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{"conf/structfmt.json": {Data: []byte(`{"renderer":"console","logLevel":"warn"}`)}}
	cfg, err := LoadFS(files, "conf/structfmt.json")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if cfg.Renderer != "console" || level != zapcore.WarnLevel {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
