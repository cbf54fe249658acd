// Package console renders documents for terminals: one heading per level of
// the type chain followed by its entries, optionally coloured.
package console

import (
	"context"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
	"github.com/goliatone/go-structfmt/pkg/renderers/text"
)

// Name is the identifier the renderer registers under.
const Name = "console"

// Palette groups the colours used for each part of the output.
type Palette struct {
	Level    *color.Color
	Field    *color.Color
	Null     *color.Color
	Sequence *color.Color
}

// DefaultPalette returns the palette used when none is configured.
func DefaultPalette() Palette {
	return Palette{
		Level:    color.New(color.FgYellow, color.Bold),
		Field:    color.New(color.FgCyan),
		Null:     color.New(color.Faint),
		Sequence: color.New(color.FgGreen),
	}
}

// Option configures the console renderer.
type Option func(*Renderer)

// WithPalette overrides the colours. Nil entries keep the default.
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		if p.Level != nil {
			r.palette.Level = p.Level
		}
		if p.Field != nil {
			r.palette.Field = p.Field
		}
		if p.Null != nil {
			r.palette.Null = p.Null
		}
		if p.Sequence != nil {
			r.palette.Sequence = p.Sequence
		}
	}
}

// WithIndent sets the prefix written before each entry.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer for terminal output.
type Renderer struct {
	palette Palette
	indent  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the console renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{palette: DefaultPalette(), indent: "  "}
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
	return "text/plain; charset=utf-8"
}

// Render writes doc grouped by level. Colour is applied only when
// options.Color is set, regardless of whether stdout is a terminal.
func (r *Renderer) Render(ctx context.Context, doc model.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := r.resolvePalette(options.Color)
	var b strings.Builder

	if title := strings.TrimSpace(options.Title); title != "" {
		b.WriteString(p.Level.Sprint(title))
		b.WriteByte('\n')
	}
	if doc.Null {
		b.WriteString(p.Null.Sprint(model.NullText))
		b.WriteByte('\n')
		return []byte(b.String()), nil
	}
	if doc.Empty() {
		b.WriteString("{}\n")
		return []byte(b.String()), nil
	}

	for _, level := range doc.Levels {
		if len(level.Fields) == 0 {
			continue
		}
		b.WriteString(p.Level.Sprint(level.Type))
		b.WriteByte('\n')
		for _, field := range level.Fields {
			b.WriteString(r.indent)
			b.WriteString(p.Field.Sprint(field.Name))
			b.WriteString(": ")
			b.WriteString(r.value(p, field.Value))
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

func (r *Renderer) value(p Palette, value model.Value) string {
	switch value.Kind {
	case model.ValueKindNull:
		return p.Null.Sprint(model.NullText)
	case model.ValueKindSequence:
		return p.Sequence.Sprint(text.Value(value))
	default:
		return text.Value(value)
	}
}

// resolvePalette copies the palette with colour forced on or off so the
// output does not depend on the global color.NoColor detection.
func (r *Renderer) resolvePalette(enabled bool) Palette {
	clone := func(c *color.Color) *color.Color {
		out := *c
		if enabled {
			out.EnableColor()
		} else {
			out.DisableColor()
		}
		return &out
	}
	return Palette{
		Level:    clone(r.palette.Level),
		Field:    clone(r.palette.Field),
		Null:     clone(r.palette.Null),
		Sequence: clone(r.palette.Sequence),
	}
}
