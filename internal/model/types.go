package model

import (
	"errors"
	"reflect"
)

// ValueKind classifies how a field value is rendered.
type ValueKind string

const (
	ValueKindNull     ValueKind = "null"
	ValueKindScalar   ValueKind = "scalar"
	ValueKindSequence ValueKind = "sequence"
	ValueKindNested   ValueKind = "nested"
)

// NullText is the literal used for absent values and nil inputs.
const NullText = "null"

var (
	// ErrUnreadableField reports a field whose value could not be read even
	// after lifting visibility restrictions.
	ErrUnreadableField = errors.New("model: field is unreadable")
	// ErrUnsupportedKind reports a field kind the builder refuses to render.
	ErrUnsupportedKind = errors.New("model: unsupported field kind")
)

// FieldDescriptor captures the metadata of one directly-declared struct field
// used to decide inclusion and ordering.
type FieldDescriptor struct {
	Name    string       `json:"name"`
	Type    reflect.Type `json:"-"`
	Index   int          `json:"index"`
	Static  bool         `json:"static,omitempty"`
	Skipped bool         `json:"skipped,omitempty"`
	// Base marks the embedded field that links the type to the next level of
	// its chain. Base fields never render as entries.
	Base bool `json:"base,omitempty"`
}

// Eligible reports whether the descriptor produces an output entry.
func (d FieldDescriptor) Eligible() bool {
	return !d.Static && !d.Skipped && !d.Base
}

// Value is the rendered form of a field value.
type Value struct {
	Kind     ValueKind `json:"kind"`
	Text     string    `json:"text,omitempty"`
	Elements []string  `json:"elements,omitempty"`
	Nested   *Document `json:"nested,omitempty"`
}

// Field is a single `name: value` entry owned by one level of the chain.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Value Value  `json:"value"`
}

// Level holds the eligible fields declared directly by one type of the chain,
// sorted by name.
type Level struct {
	Type    string  `json:"type"`
	Package string  `json:"package,omitempty"`
	Fields  []Field `json:"fields,omitempty"`
}

// Document is the structural model of an inspected value. Levels run from the
// most-derived type to the last base type.
type Document struct {
	Type   string  `json:"type"`
	Null   bool    `json:"null,omitempty"`
	Levels []Level `json:"levels,omitempty"`
}

// Fields flattens the document entries in output order.
func (d Document) Fields() []Field {
	var out []Field
	for _, level := range d.Levels {
		out = append(out, level.Fields...)
	}
	return out
}

// Empty reports whether the document has no entries to render.
func (d Document) Empty() bool {
	for _, level := range d.Levels {
		if len(level.Fields) > 0 {
			return false
		}
	}
	return true
}
