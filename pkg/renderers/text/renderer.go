// Package text renders documents in the compact single-line form
// `{name: value, other: [1, 2]}`. Fields of the most-derived type come first,
// each level in name order; absent values render as null.
package text

import (
	"context"
	"strings"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
)

// Name is the identifier the renderer registers under.
const Name = "text"

const separator = ", "

// Renderer implements render.Renderer for the single-line text form.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the MIME type of the output.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the single-line form of doc.
func (r *Renderer) Render(ctx context.Context, doc model.Document, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(Format(doc)), nil
}

// Format returns the single-line form of doc. A null document renders as
// "null" and a document without entries as "{}".
func Format(doc model.Document) string {
	if doc.Null {
		return model.NullText
	}
	var b strings.Builder
	writeDocument(&b, doc)
	return b.String()
}

// Value returns the text form of a single field value.
func Value(value model.Value) string {
	var b strings.Builder
	writeValue(&b, value)
	return b.String()
}

func writeDocument(b *strings.Builder, doc model.Document) {
	b.WriteByte('{')
	first := true
	for _, level := range doc.Levels {
		for _, field := range level.Fields {
			if !first {
				b.WriteString(separator)
			}
			first = false
			b.WriteString(field.Name)
			b.WriteString(": ")
			writeValue(b, field.Value)
		}
	}
	b.WriteByte('}')
}

func writeValue(b *strings.Builder, value model.Value) {
	switch value.Kind {
	case model.ValueKindNull:
		b.WriteString(model.NullText)
	case model.ValueKindSequence:
		b.WriteByte('[')
		b.WriteString(strings.Join(value.Elements, separator))
		b.WriteByte(']')
	case model.ValueKindNested:
		if value.Nested == nil || value.Nested.Null {
			b.WriteString(model.NullText)
			return
		}
		writeDocument(b, *value.Nested)
	default:
		b.WriteString(value.Text)
	}
}
