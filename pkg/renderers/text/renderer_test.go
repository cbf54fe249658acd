package text

import (
	"context"
	"testing"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
)

func scalar(name, text string) model.Field {
	return model.Field{Name: name, Value: model.Value{Kind: model.ValueKindScalar, Text: text}}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		doc  model.Document
		want string
	}{
		{
			name: "null",
			doc:  model.Document{Null: true},
			want: "null",
		},
		{
			name: "no levels",
			doc:  model.Document{Type: "int"},
			want: "{}",
		},
		{
			name: "empty levels only",
			doc:  model.Document{Levels: []model.Level{{}, {}, {}}},
			want: "{}",
		},
		{
			name: "single field",
			doc:  model.Document{Levels: []model.Level{{Fields: []model.Field{scalar("count", "5")}}}},
			want: "{count: 5}",
		},
		{
			name: "empty middle and trailing levels",
			doc: model.Document{Levels: []model.Level{
				{Fields: []model.Field{scalar("y", "2")}},
				{},
				{Fields: []model.Field{scalar("a", "1"), scalar("x", "3")}},
				{},
			}},
			want: "{y: 2, a: 1, x: 3}",
		},
		{
			name: "empty leading level",
			doc: model.Document{Levels: []model.Level{
				{},
				{Fields: []model.Field{scalar("x", "1")}},
			}},
			want: "{x: 1}",
		},
		{
			name: "sequence and null",
			doc: model.Document{Levels: []model.Level{{Fields: []model.Field{
				{Name: "arr", Value: model.Value{Kind: model.ValueKindSequence, Elements: []string{"1", "2", "3"}}},
				{Name: "empty", Value: model.Value{Kind: model.ValueKindSequence}},
				{Name: "gone", Value: model.Value{Kind: model.ValueKindNull, Text: "null"}},
			}}}},
			want: "{arr: [1, 2, 3], empty: [], gone: null}",
		},
		{
			name: "nested",
			doc: model.Document{Levels: []model.Level{{Fields: []model.Field{
				{Name: "in", Value: model.Value{Kind: model.ValueKindNested, Nested: &model.Document{
					Levels: []model.Level{{Fields: []model.Field{scalar("name", "a")}}},
				}}},
				{Name: "none", Value: model.Value{Kind: model.ValueKindNested}},
			}}}},
			want: "{in: {name: a}, none: null}",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tc.doc); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRenderer_Render(t *testing.T) {
	renderer := New()
	if renderer.Name() != Name {
		t.Fatalf("want name %q, got %q", Name, renderer.Name())
	}

	doc := model.Document{Levels: []model.Level{{Fields: []model.Field{scalar("a", "1")}}}}
	out, err := renderer.Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "{a: 1}" {
		t.Fatalf("want %q, got %q", "{a: 1}", out)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, doc, render.RenderOptions{}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
