package model

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type selfEmbedding struct {
	*selfEmbedding
	V int
}

type twoEmbeds struct {
	base
	inner
}

type secondEmbed struct {
	fmtName string
	base
	extra inner
}

func TestChain(t *testing.T) {
	cases := []struct {
		name string
		in   reflect.Type
		want []string
	}{
		{name: "flat", in: reflect.TypeOf(flat{}), want: []string{"model.flat"}},
		{name: "pointer", in: reflect.TypeOf(&derived{}), want: []string{"model.derived", "model.base"}},
		{name: "through empty level", in: reflect.TypeOf(leaf{}), want: []string{"model.leaf", "model.middle", "model.base"}},
		{name: "base after plain fields", in: reflect.TypeOf(secondEmbed{}), want: []string{"model.secondEmbed", "model.base"}},
		{name: "only first embed is base", in: reflect.TypeOf(twoEmbeds{}), want: []string{"model.twoEmbeds", "model.base"}},
		{name: "self embedding", in: reflect.TypeOf(selfEmbedding{}), want: []string{"model.selfEmbedding"}},
		{name: "non struct", in: reflect.TypeOf(0), want: []string{"int"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got []string
			for _, typ := range Chain(tc.in) {
				got = append(got, typ.String())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("chain mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDescribe_SecondEmbedIsOrdinaryField(t *testing.T) {
	got := Eligible(Describe(reflect.TypeOf(twoEmbeds{}), ""))
	if len(got) != 1 || got[0].Name != "inner" || got[0].Base {
		t.Fatalf("want inner as the only eligible field, got %+v", got)
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(reflect.TypeOf(withStatic{}), "")
	if len(got) != 5 {
		t.Fatalf("want 5 descriptors, got %d", len(got))
	}

	flags := map[string][2]bool{}
	for _, d := range got {
		if d.Name == "_" {
			if !d.Static {
				t.Fatalf("blank field should be static")
			}
			continue
		}
		flags[d.Name] = [2]bool{d.Static, d.Skipped}
	}
	want := map[string][2]bool{
		"Shared": {true, false},
		"Secret": {false, true},
		"Hidden": {false, true},
		"Name":   {false, false},
	}
	if diff := cmp.Diff(want, flags); diff != "" {
		t.Fatalf("descriptor flags mismatch (-want +got):\n%s", diff)
	}

	descriptors := Describe(reflect.TypeOf(derived{}), DefaultTagKey)
	if !descriptors[0].Base || descriptors[1].Base {
		t.Fatalf("expected only the embedded field to be the base: %+v", descriptors)
	}
}

func TestEligible_OrdinalSort(t *testing.T) {
	in := []FieldDescriptor{
		{Name: "beta"},
		{Name: "Zeta"},
		{Name: "alpha"},
		{Name: "_", Static: true},
		{Name: "base", Base: true},
	}
	var got []string
	for _, d := range Eligible(in) {
		got = append(got, d.Name)
	}
	if diff := cmp.Diff([]string{"Zeta", "alpha", "beta"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
