package console

import (
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
)

func snakeDocument() model.Document {
	return model.Document{
		Type: "fixtures.Snake",
		Levels: []model.Level{
			{Type: "fixtures.Snake", Fields: []model.Field{
				{Name: "organizationName", Value: model.Value{Kind: model.ValueKindScalar, Text: "Snake Inc"}},
			}},
			{Type: "fixtures.Reptile"},
			{Type: "fixtures.Animal", Fields: []model.Field{
				{Name: "legs", Value: model.Value{Kind: model.ValueKindScalar, Text: "0"}},
				{Name: "owner", Value: model.Value{Kind: model.ValueKindNull, Text: model.NullText}},
				{Name: "scales", Value: model.Value{Kind: model.ValueKindSequence, Elements: []string{"1", "2"}}},
			}},
		},
	}
}

func TestRenderer_Plain(t *testing.T) {
	out, err := New().Render(context.Background(), snakeDocument(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"fixtures.Snake",
		"  organizationName: Snake Inc",
		"fixtures.Animal",
		"  legs: 0",
		"  owner: null",
		"  scales: [1, 2]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_Colour(t *testing.T) {
	renderer := New(WithPalette(Palette{Field: color.New(color.FgMagenta)}), WithIndent("- "))

	out, err := renderer.Render(context.Background(), snakeDocument(), render.RenderOptions{Color: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "- \x1b[35mlegs\x1b[0m: 0") {
		t.Fatalf("expected coloured field name, got %q", out)
	}

	plain, err := renderer.Render(context.Background(), snakeDocument(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(plain), "\x1b[") {
		t.Fatalf("colour disabled but escape codes present: %q", plain)
	}
}

func TestRenderer_NullEmptyAndTitle(t *testing.T) {
	cases := []struct {
		name    string
		doc     model.Document
		options render.RenderOptions
		want    string
	}{
		{name: "null", doc: model.Document{Null: true}, want: "null\n"},
		{name: "empty", doc: model.Document{Levels: []model.Level{{Type: "int"}}}, want: "{}\n"},
		{name: "title", doc: model.Document{Null: true}, options: render.RenderOptions{Title: "pet"}, want: "pet\nnull\n"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := New().Render(context.Background(), tc.doc, tc.options)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if string(out) != tc.want {
				t.Fatalf("want %q, got %q", tc.want, out)
			}
		})
	}
}
