package model

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ValueRenderer turns a readable field value into its rendered form.
type ValueRenderer interface {
	RenderValue(v reflect.Value) (Value, error)
}

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// IsNil reports whether v is absent: invalid, or a nil pointer, interface,
// map, slice, func or chan.
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// IsSequence reports whether v is an array or slice.
func IsSequence(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Array || v.Kind() == reflect.Slice)
}

// PlainText renders v the way fmt.Sprint would, except absent values become
// "null" and pointers to non-struct values are followed unless the pointer
// type has its own String or Error method.
func PlainText(v reflect.Value) string {
	for {
		if IsNil(v) {
			return NullText
		}
		switch {
		case v.Kind() == reflect.Interface:
			v = v.Elem()
			continue
		case v.Kind() == reflect.Pointer && !hasTextMethod(v.Type()) && v.Elem().Kind() != reflect.Struct:
			v = v.Elem()
			continue
		}
		break
	}
	if !v.CanInterface() {
		if !v.CanAddr() {
			return fmt.Sprint(v)
		}
		v = reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}
	return fmt.Sprint(v.Interface())
}

// Elements renders every element of an array or slice with PlainText.
func Elements(v reflect.Value) []string {
	out := make([]string, v.Len())
	for i := range out {
		out[i] = PlainText(v.Index(i))
	}
	return out
}

// BuiltinValues is the renderer used when no registry is configured: null,
// then sequence, then plain text.
type BuiltinValues struct{}

// RenderValue implements ValueRenderer.
func (BuiltinValues) RenderValue(v reflect.Value) (Value, error) {
	switch {
	case IsNil(v):
		return Value{Kind: ValueKindNull, Text: NullText}, nil
	case IsSequence(v):
		return Value{Kind: ValueKindSequence, Elements: Elements(v)}, nil
	default:
		return Value{Kind: ValueKindScalar, Text: PlainText(v)}, nil
	}
}

func hasTextMethod(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(errorType)
}
