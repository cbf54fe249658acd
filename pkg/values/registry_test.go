package values

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-structfmt/internal/model"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()
	var nilMap map[string]int

	cases := []struct {
		name   string
		value  any
		expect string
	}{
		{name: "nil map", value: nilMap, expect: RendererNull},
		{name: "array", value: [2]int{1, 2}, expect: RendererSequence},
		{name: "slice", value: []string{"a"}, expect: RendererSequence},
		{name: "int", value: 5, expect: RendererScalar},
		{name: "string", value: "s", expect: RendererScalar},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(reflect.ValueOf(tc.value))
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestRenderValue_Builtins(t *testing.T) {
	reg := NewRegistry()
	one := 1

	got, err := reg.RenderValue(reflect.ValueOf([]any{1, nil, "x", &one}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := model.Value{Kind: model.ValueKindSequence, Elements: []string{"1", "null", "x", "1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}

	got, _ = reg.RenderValue(reflect.ValueOf([]int{}))
	if got.Kind != model.ValueKindSequence || len(got.Elements) != 0 {
		t.Fatalf("empty slice should render as empty sequence, got %+v", got)
	}
}

func TestRegister_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	timeType := reflect.TypeOf(time.Time{})
	reg.Register("date", 50, func(v reflect.Value) bool {
		return v.Type() == timeType
	}, func(v reflect.Value) (model.Value, error) {
		ts := v.Interface().(time.Time)
		return model.Value{Kind: model.ValueKindScalar, Text: ts.Format("2006-01-02")}, nil
	})

	ts := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	got, err := reg.RenderValue(reflect.ValueOf(ts))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got.Text != "2024-03-09" {
		t.Fatalf("want custom date text, got %q", got.Text)
	}
}

func TestRegister_TieGoesToLatest(t *testing.T) {
	reg := NewRegistry()
	reg.Register("redacted", 0, func(reflect.Value) bool { return true }, func(reflect.Value) (model.Value, error) {
		return model.Value{Kind: model.ValueKindScalar, Text: "***"}, nil
	})

	if name, _ := reg.Resolve(reflect.ValueOf("secret")); name != "redacted" {
		t.Fatalf("want latest registration to win the tie, got %q", name)
	}
	if names := reg.Names(); !strings.HasPrefix(strings.Join(names, ","), "null,sequence,redacted") {
		t.Fatalf("unexpected resolution order %v", names)
	}
}

func TestRegister_IgnoresInvalidRules(t *testing.T) {
	reg := &Registry{}
	reg.Register("", 1, func(reflect.Value) bool { return true }, func(reflect.Value) (model.Value, error) { return model.Value{}, nil })
	reg.Register("nil-matcher", 1, nil, func(reflect.Value) (model.Value, error) { return model.Value{}, nil })
	reg.Register("nil-render", 1, func(reflect.Value) bool { return true }, nil)

	if _, err := reg.RenderValue(reflect.ValueOf(1)); !errors.Is(err, ErrNoRenderer) {
		t.Fatalf("want ErrNoRenderer, got %v", err)
	}
}
