package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-structfmt/pkg/model"
)

func subsetDocument() model.Document {
	field := func(name string) model.Field {
		return model.Field{Name: name, Value: model.Value{Kind: model.ValueKindScalar, Text: name}}
	}
	return model.Document{
		Type: "fixtures.Pet",
		Levels: []model.Level{
			{Type: "fixtures.Pet", Fields: []model.Field{field("age"), field("name")}},
			{Type: "fixtures.Animal", Fields: []model.Field{field("legs"), field("move")}},
		},
	}
}

func names(doc model.Document) [][]string {
	out := make([][]string, 0, len(doc.Levels))
	for _, level := range doc.Levels {
		var fields []string
		for _, field := range level.Fields {
			fields = append(fields, field.Name)
		}
		out = append(out, fields)
	}
	return out
}

func TestApplySubset(t *testing.T) {
	cases := []struct {
		name   string
		subset FieldSubset
		want   [][]string
	}{
		{name: "empty subset", subset: FieldSubset{}, want: [][]string{{"age", "name"}, {"legs", "move"}}},
		{name: "bare level name", subset: FieldSubset{Levels: []string{"animal"}}, want: [][]string{nil, {"legs", "move"}}},
		{name: "qualified level name", subset: FieldSubset{Levels: []string{"Fixtures.Pet"}}, want: [][]string{{"age", "name"}, nil}},
		{name: "fields across levels", subset: FieldSubset{Fields: []string{"name", "legs"}}, want: [][]string{{"name"}, {"legs"}}},
		{name: "levels and fields", subset: FieldSubset{Levels: []string{"Pet"}, Fields: []string{"legs", "age"}}, want: [][]string{{"age"}, nil}},
		{name: "blank tokens ignored", subset: FieldSubset{Levels: []string{" "}, Fields: []string{""}}, want: [][]string{{"age", "name"}, {"legs", "move"}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ApplySubset(subsetDocument(), tc.subset)
			if diff := cmp.Diff(tc.want, names(got)); diff != "" {
				t.Fatalf("subset mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplySubset_DoesNotModifyInput(t *testing.T) {
	doc := subsetDocument()
	_ = ApplySubset(doc, FieldSubset{Fields: []string{"move"}})

	if diff := cmp.Diff([][]string{{"age", "name"}, {"legs", "move"}}, names(doc)); diff != "" {
		t.Fatalf("input modified (-want +got):\n%s", diff)
	}
	if !(FieldSubset{Fields: []string{" "}}).Empty() {
		t.Fatalf("blank subset should be empty")
	}
	if got := ApplySubset(model.Document{Null: true}, FieldSubset{Fields: []string{"x"}}); !got.Null {
		t.Fatalf("null document should pass through")
	}
}
