package model

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"go.uber.org/zap"
)

// Builder converts arbitrary values into Documents.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options. Zero-valued options fall
// back to the defaults.
func New(options Options) *Builder {
	opts := defaultOptions()
	if strings.TrimSpace(options.TagKey) != "" {
		opts.TagKey = strings.TrimSpace(options.TagKey)
	}
	if options.MaxDepth > 0 {
		opts.MaxDepth = options.MaxDepth
	}
	if options.Values != nil {
		opts.Values = options.Values
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	opts.Nested = options.Nested
	return &Builder{opts: opts}
}

// Build walks the type chain of value and collects the eligible fields of each
// level. It never fails for a valid input; fields that cannot be read are
// logged and left out. A type that embeds itself through a pointer ends the
// walk at the repeat, matching Chain.
func (b *Builder) Build(value any) (Document, error) {
	return b.build(reflect.ValueOf(value), 0), nil
}

func (b *Builder) build(v reflect.Value, depth int) Document {
	target, ok := indirect(v)
	if !ok {
		return Document{Type: typeName(v), Null: true}
	}

	doc := Document{Type: target.Type().String()}
	if target.Kind() != reflect.Struct {
		doc.Levels = []Level{{Type: doc.Type, Package: target.Type().PkgPath()}}
		return doc
	}

	current := addressable(target)
	seen := make(map[reflect.Type]struct{})
	for {
		t := current.Type()
		if _, ok := seen[t]; ok {
			break
		}
		seen[t] = struct{}{}
		descriptors := Describe(t, b.opts.TagKey)
		level := Level{Type: t.String(), Package: t.PkgPath()}

		for _, d := range Eligible(descriptors) {
			field, err := b.field(current, d, depth)
			if err != nil {
				b.opts.Logger.Warn("structfmt: field unreadable",
					zap.String("type", level.Type),
					zap.String("field", d.Name),
					zap.Error(err))
				continue
			}
			level.Fields = append(level.Fields, field)
		}
		doc.Levels = append(doc.Levels, level)

		base := -1
		for _, d := range descriptors {
			if d.Base {
				// a skip marker on the embedding drops the whole base
				if !d.Skipped {
					base = d.Index
				}
				break
			}
		}
		if base < 0 {
			break
		}

		next, err := readField(current, base)
		if err != nil {
			b.opts.Logger.Warn("structfmt: base unreadable",
				zap.String("type", level.Type),
				zap.String("field", descriptors[base].Name),
				zap.Error(err))
			break
		}
		next, ok = indirect(next)
		if !ok {
			b.opts.Logger.Debug("structfmt: nil base ends chain",
				zap.String("type", level.Type),
				zap.String("field", descriptors[base].Name))
			break
		}
		current = next
	}

	return doc
}

func (b *Builder) field(owner reflect.Value, d FieldDescriptor, depth int) (Field, error) {
	fv, err := readField(owner, d.Index)
	if err != nil {
		return Field{}, err
	}
	if fv.Kind() == reflect.UnsafePointer {
		return Field{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, fv.Kind())
	}

	value, err := b.value(fv, depth)
	if err != nil {
		return Field{}, err
	}

	return Field{
		Name:  d.Name,
		Type:  d.Type.String(),
		Kind:  d.Type.Kind().String(),
		Index: d.Index,
		Value: value,
	}, nil
}

func (b *Builder) value(fv reflect.Value, depth int) (val Value, err error) {
	if b.opts.Nested && depth < b.opts.MaxDepth && nestable(fv) {
		nested := b.build(fv, depth+1)
		return Value{Kind: ValueKindNested, Nested: &nested}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnreadableField, r)
		}
	}()
	return b.opts.Values.RenderValue(fv)
}

// readField returns the value of field index of owner, lifting the read-only
// flag Go puts on unexported fields. owner must be addressable.
func readField(owner reflect.Value, index int) (reflect.Value, error) {
	f := owner.Field(index)
	if f.CanInterface() {
		return f, nil
	}
	if !f.CanAddr() {
		return reflect.Value{}, fmt.Errorf("%w: %s is not addressable", ErrUnreadableField, owner.Type().Field(index).Name)
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem(), nil
}

// addressable returns v itself when it can be addressed, otherwise a copy.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

// indirect follows pointers and interfaces. It reports false when it meets an
// absent value.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for {
		if IsNil(v) {
			return v, false
		}
		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
			return v, true
		}
		v = v.Elem()
	}
}

func nestable(v reflect.Value) bool {
	if IsNil(v) {
		return false
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if hasTextMethod(v.Type()) {
			return false
		}
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.Kind() == reflect.Struct && !hasTextMethod(v.Type()) && !hasTextMethod(reflect.PointerTo(v.Type()))
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	return indirectType(v.Type()).String()
}
