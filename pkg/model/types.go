package model

import (
	"reflect"

	internalmodel "github.com/goliatone/go-structfmt/internal/model"
)

// ValueKind re-exports the internal ValueKind enumeration.
type ValueKind = internalmodel.ValueKind

const (
	ValueKindNull     = internalmodel.ValueKindNull
	ValueKindScalar   = internalmodel.ValueKindScalar
	ValueKindSequence = internalmodel.ValueKindSequence
	ValueKindNested   = internalmodel.ValueKindNested
)

// NullText is the literal rendered for absent values.
const NullText = internalmodel.NullText

// DefaultTagKey is the struct tag consulted for skip and static markers.
const DefaultTagKey = internalmodel.DefaultTagKey

var (
	ErrUnreadableField = internalmodel.ErrUnreadableField
	ErrUnsupportedKind = internalmodel.ErrUnsupportedKind
)

type FieldDescriptor = internalmodel.FieldDescriptor
type Value = internalmodel.Value
type Field = internalmodel.Field
type Level = internalmodel.Level
type Document = internalmodel.Document
type ValueRenderer = internalmodel.ValueRenderer

// Chain returns the type chain of t, most-derived first.
func Chain(t reflect.Type) []reflect.Type {
	return internalmodel.Chain(t)
}

// Describe returns the directly-declared field descriptors of t. An empty
// tagKey selects DefaultTagKey.
func Describe(t reflect.Type, tagKey string) []FieldDescriptor {
	return internalmodel.Describe(t, tagKey)
}
