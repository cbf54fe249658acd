// Package yaml renders documents as an ordered YAML mapping. Keys keep the
// document order: most-derived level first, names sorted within a level.
package yaml

import (
	"bytes"
	"context"
	"fmt"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
)

// Name is the identifier the renderer registers under.
const Name = "yaml"

// Option configures the yaml renderer.
type Option func(*Renderer)

// WithIndent sets the indentation width. Values below 2 are ignored.
func WithIndent(spaces int) Option {
	return func(r *Renderer) {
		if spaces >= 2 {
			r.indent = spaces
		}
	}
}

// WithLevels groups entries under one mapping per level keyed by type name
// instead of a single flat mapping.
func WithLevels() Option {
	return func(r *Renderer) {
		r.grouped = true
	}
}

// Renderer implements render.Renderer for YAML output.
type Renderer struct {
	indent  int
	grouped bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the yaml renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: 2}
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
	return "application/yaml"
}

// Render encodes doc as YAML.
func (r *Renderer) Render(ctx context.Context, doc model.Document, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var node *yamlv3.Node
	if r.grouped {
		node = levelsNode(doc)
	} else {
		node = documentNode(doc)
	}

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(r.indent)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("yaml renderer: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml renderer: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Node returns the YAML node for doc in flat form.
func Node(doc model.Document) *yamlv3.Node {
	return documentNode(doc)
}

func documentNode(doc model.Document) *yamlv3.Node {
	if doc.Null {
		return nullNode()
	}
	mapping := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
	seen := make(map[string]struct{})
	for _, level := range doc.Levels {
		for _, field := range level.Fields {
			// a base field shadowed by a derived one keeps its level as prefix
			key := field.Name
			if _, ok := seen[key]; ok {
				key = level.Type + "." + field.Name
			}
			seen[key] = struct{}{}
			mapping.Content = append(mapping.Content, stringNode(key), valueNode(field.Value))
		}
	}
	if len(mapping.Content) == 0 {
		mapping.Style = yamlv3.FlowStyle
	}
	return mapping
}

func levelsNode(doc model.Document) *yamlv3.Node {
	if doc.Null {
		return nullNode()
	}
	mapping := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
	for _, level := range doc.Levels {
		fields := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		appendFields(fields, level.Fields)
		if len(fields.Content) == 0 {
			fields.Style = yamlv3.FlowStyle
		}
		mapping.Content = append(mapping.Content, stringNode(level.Type), fields)
	}
	if len(mapping.Content) == 0 {
		mapping.Style = yamlv3.FlowStyle
	}
	return mapping
}

func appendFields(mapping *yamlv3.Node, fields []model.Field) {
	for _, field := range fields {
		mapping.Content = append(mapping.Content, stringNode(field.Name), valueNode(field.Value))
	}
}

func valueNode(value model.Value) *yamlv3.Node {
	switch value.Kind {
	case model.ValueKindNull:
		return nullNode()
	case model.ValueKindSequence:
		seq := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq", Style: yamlv3.FlowStyle}
		for _, element := range value.Elements {
			seq.Content = append(seq.Content, scalarNode(element))
		}
		return seq
	case model.ValueKindNested:
		if value.Nested == nil {
			return nullNode()
		}
		return documentNode(*value.Nested)
	default:
		return scalarNode(value.Text)
	}
}

// scalarNode lets the encoder pick the tag so numbers and booleans stay
// unquoted while strings that would resolve to another type get quoted.
func scalarNode(text string) *yamlv3.Node {
	if text == model.NullText {
		return nullNode()
	}
	var probe yamlv3.Node
	if err := yamlv3.Unmarshal([]byte(text), &probe); err == nil && len(probe.Content) == 1 {
		inner := probe.Content[0]
		if inner.Kind == yamlv3.ScalarNode && inner.Value == text {
			switch inner.Tag {
			case "!!int", "!!float", "!!bool":
				return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: inner.Tag, Value: text}
			}
		}
	}
	return stringNode(text)
}

func stringNode(text string) *yamlv3.Node {
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: text}
}

func nullNode() *yamlv3.Node {
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}
}
