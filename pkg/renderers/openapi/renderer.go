// Package openapi describes documents as OpenAPI 3 schemas. Each level of the
// type chain becomes one object schema inside an allOf, most-derived first,
// and the x-structfmt-order extension records the entry order.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
)

// Name is the identifier the renderer registers under.
const Name = "openapi"

// OrderExtension lists field names in output order on every generated schema.
const OrderExtension = "x-structfmt-order"

const openAPIVersion = "3.0.3"

var componentNameInvalid = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Option configures the openapi renderer.
type Option func(*Renderer)

// WithDocument wraps the schema in a full OpenAPI document under
// components.schemas and validates it before returning.
func WithDocument(title, version string) Option {
	return func(r *Renderer) {
		r.document = true
		if strings.TrimSpace(title) != "" {
			r.title = title
		}
		if strings.TrimSpace(version) != "" {
			r.version = version
		}
	}
}

// Renderer implements render.Renderer for schema output.
type Renderer struct {
	document bool
	title    string
	version  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the openapi renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{title: "structfmt", version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the MIME type of the output.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render encodes the schema of doc as indented JSON.
func (r *Renderer) Render(ctx context.Context, doc model.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schema := Schema(doc)
	if title := strings.TrimSpace(options.Title); title != "" {
		schema.Title = title
	}

	if !r.document {
		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("openapi renderer: encode schema: %w", err)
		}
		return out, nil
	}

	spec := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    &openapi3.Info{Title: r.title, Version: r.version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				ComponentName(doc.Type): openapi3.NewSchemaRef("", schema),
			},
		},
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi renderer: validate document: %w", err)
	}
	out, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi renderer: encode document: %w", err)
	}
	return out, nil
}

// ComponentName turns a Go type name into a valid components.schemas key.
func ComponentName(typeName string) string {
	name := strings.Trim(componentNameInvalid.ReplaceAllString(typeName, "_"), "_")
	if name == "" {
		return "Value"
	}
	return name
}

// Schema builds the schema for doc. A null document yields a nullable schema
// with no type.
func Schema(doc model.Document) *openapi3.Schema {
	if doc.Null {
		schema := openapi3.NewSchema()
		schema.Title = doc.Type
		schema.Nullable = true
		return schema
	}

	schema := openapi3.NewSchema()
	schema.Title = doc.Type
	var order []string
	for _, level := range doc.Levels {
		levelSchema := openapi3.NewObjectSchema()
		levelSchema.Title = level.Type
		names := make([]string, 0, len(level.Fields))
		for _, field := range level.Fields {
			levelSchema.WithProperty(field.Name, fieldSchema(field))
			names = append(names, field.Name)
		}
		setOrder(levelSchema, names)
		schema.AllOf = append(schema.AllOf, openapi3.NewSchemaRef("", levelSchema))
		order = append(order, names...)
	}
	setOrder(schema, order)
	return schema
}

func setOrder(schema *openapi3.Schema, names []string) {
	if schema.Extensions == nil {
		schema.Extensions = make(map[string]any)
	}
	if names == nil {
		names = []string{}
	}
	schema.Extensions[OrderExtension] = names
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	if field.Value.Kind == model.ValueKindNested && field.Value.Nested != nil {
		schema = Schema(*field.Value.Nested)
	} else {
		schema = schemaForType(field.Type, field.Kind)
	}
	schema.Description = field.Type
	if field.Value.Kind == model.ValueKindNull {
		schema.Nullable = true
	}
	return schema
}

// schemaForType maps a Go type name to the closest OpenAPI type. Pointers map
// to their element type as nullable.
func schemaForType(typeName, kind string) *openapi3.Schema {
	switch {
	case strings.HasPrefix(typeName, "*"):
		schema := schemaForType(strings.TrimPrefix(typeName, "*"), "")
		schema.Nullable = true
		return schema
	case strings.HasPrefix(typeName, "[]"):
		return openapi3.NewArraySchema().WithItems(schemaForType(strings.TrimPrefix(typeName, "[]"), ""))
	case strings.HasPrefix(typeName, "["):
		if end := strings.Index(typeName, "]"); end > 0 {
			return openapi3.NewArraySchema().WithItems(schemaForType(typeName[end+1:], ""))
		}
	case strings.HasPrefix(typeName, "map["):
		return openapi3.NewObjectSchema()
	}

	switch typeName {
	case "bool":
		return openapi3.NewBoolSchema()
	case "string":
		return openapi3.NewStringSchema()
	case "int64", "uint64":
		return openapi3.NewInt64Schema()
	case "int", "int8", "int16", "int32", "uint", "uint8", "uint16", "uint32", "uintptr":
		return openapi3.NewIntegerSchema()
	case "float32", "float64":
		return openapi3.NewFloat64Schema()
	case "interface {}", "any":
		return openapi3.NewSchema()
	case "time.Time":
		return openapi3.NewDateTimeSchema()
	}
	if kind != "" && kind != typeName {
		switch kind {
		case "slice", "array":
			return openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
		case "struct", "map":
		default:
			return schemaForType(kind, "")
		}
	}
	// Named structs are opaque here; nested rendering exposes their fields.
	return openapi3.NewObjectSchema()
}
