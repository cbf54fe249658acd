package gotemplate

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-structfmt/pkg/testsupport"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":  {Data: []byte("Hello {{ name }}!")},
		"global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"doc.tmpl":    {Data: []byte("{% for level in levels %}{{ level.type }};{% endfor %}")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	got, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if got != "Hello Ada!" {
		t.Fatalf("want %q, got %q", "Hello Ada!", got)
	}
	if written != got {
		t.Fatalf("writer mismatch: want %q, got %q", got, written)
	}
}

func TestEngine_Autoescapes(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("hello", map[string]any{"name": "<b>Ada</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected markup to be escaped, got %q", got)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	type level struct {
		Type string `json:"type"`
	}
	data := struct {
		Levels []level `json:"levels"`
	}{Levels: []level{{Type: "a.B"}, {Type: "a.C"}}}

	got, err := engine.RenderTemplate("doc.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "a.B;a.C;" {
		t.Fatalf("want %q, got %q", "a.B;a.C;", got)
	}
}

func TestEngine_GlobalContextAndInlineTemplates(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("want %q, got %q", "env=staging", got)
	}

	inline, err := engine.Render("{{ settings.env }}-{{ n }}", map[string]any{"n": 2})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if inline != "staging-2" {
		t.Fatalf("want %q, got %q", "staging-2", inline)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("structfmt_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("structfmt_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderString("{{ name|structfmt_shout }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA" {
		t.Fatalf("want %q, got %q", "ADA", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}
