package model

import (
	"reflect"
	"sort"
	"strings"
)

// DefaultTagKey is the struct tag consulted for the skip and static markers.
const DefaultTagKey = "structfmt"

const (
	tagSkip   = "skip"
	tagOmit   = "-"
	tagStatic = "static"
)

// Chain returns the type chain of t: its concrete struct type followed by the
// type of each embedded base, most-derived first. Pointer types are followed
// to their element type. Only the first embedded struct of a type is its
// base; further embedded structs are ordinary fields rendered as one value.
// A type that embeds itself ends the chain at the repeat.
func Chain(t reflect.Type) []reflect.Type {
	t = indirectType(t)
	if t == nil {
		return nil
	}
	chain := []reflect.Type{t}
	seen := map[reflect.Type]struct{}{t: {}}
	for {
		idx := baseIndex(t)
		if idx < 0 {
			return chain
		}
		next := indirectType(t.Field(idx).Type)
		if _, ok := seen[next]; ok {
			return chain
		}
		seen[next] = struct{}{}
		chain = append(chain, next)
		t = next
	}
}

// Describe returns the descriptors of the fields declared directly by t, in
// declaration order. Non-struct types declare no fields.
func Describe(t reflect.Type, tagKey string) []FieldDescriptor {
	t = indirectType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if strings.TrimSpace(tagKey) == "" {
		tagKey = DefaultTagKey
	}

	base := baseIndex(t)
	out := make([]FieldDescriptor, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		static, skipped := parseTag(sf.Tag.Get(tagKey))
		out = append(out, FieldDescriptor{
			Name:    sf.Name,
			Type:    sf.Type,
			Index:   i,
			Static:  static || sf.Name == "_",
			Skipped: skipped,
			Base:    i == base,
		})
	}
	return out
}

// Eligible filters descriptors down to the ones that render and sorts them by
// name using byte-wise comparison.
func Eligible(descriptors []FieldDescriptor) []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Eligible() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// baseIndex returns the index of the first embedded field whose type is a
// struct or a pointer to one, or -1. Later embedded structs are not bases.
func baseIndex(t reflect.Type) int {
	if t.Kind() != reflect.Struct {
		return -1
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		if ft := indirectType(sf.Type); ft != nil && ft.Kind() == reflect.Struct {
			return i
		}
	}
	return -1
}

func parseTag(raw string) (static, skipped bool) {
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case tagStatic:
			static = true
		case tagSkip, tagOmit:
			skipped = true
		}
	}
	return static, skipped
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
