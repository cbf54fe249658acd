package html

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
)

func sampleDocument() model.Document {
	return model.Document{
		Type: "fixtures.Shark",
		Levels: []model.Level{
			{Type: "fixtures.Shark", Fields: []model.Field{
				{Name: "organizationName", Value: model.Value{Kind: model.ValueKindScalar, Text: "<script>alert(1)</script>"}},
			}},
			{Type: "fixtures.Marker"},
			{Type: "fixtures.Animal", Fields: []model.Field{
				{Name: "legs", Value: model.Value{Kind: model.ValueKindScalar, Text: "0"}},
				{Name: "tags", Value: model.Value{Kind: model.ValueKindSequence, Elements: []string{"a", "b"}}},
			}},
		},
	}
}

func TestRenderer_RendersDefinitionLists(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), sampleDocument(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<h2 class="structfmt-title">fixtures.Shark</h2>`,
		`<dt>legs</dt>`,
		`<dd data-kind="sequence">[a, b]</dd>`,
		`data-level="fixtures.Animal"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag leaked into output:\n%s", html)
	}
	if strings.Contains(html, `data-level="fixtures.Marker"`) {
		t.Fatalf("levels without fields should not render:\n%s", html)
	}
	if strings.Index(html, "organizationName") > strings.Index(html, "legs") {
		t.Fatalf("derived fields must precede base fields:\n%s", html)
	}
}

func TestRenderer_NullAndEmpty(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), model.Document{Null: true}, render.RenderOptions{Title: "missing"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<p class="structfmt-null">null</p>`) || !strings.Contains(string(out), "missing") {
		t.Fatalf("unexpected null output:\n%s", out)
	}

	out, err = renderer.Render(context.Background(), model.Document{Type: "int", Levels: []model.Level{{Type: "int"}}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<p class="structfmt-empty">{}</p>`) {
		t.Fatalf("unexpected empty output:\n%s", out)
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		DocumentTemplate: {Data: []byte(`<p>{{ title }}:{% for level in levels %}{{ level.fields|length }}{% endfor %}</p>`)},
	}
	renderer, err := New(WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), sampleDocument(), render.RenderOptions{Title: "T"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "<p>T:102</p>" {
		t.Fatalf("want %q, got %q", "<p>T:102</p>", out)
	}
}
