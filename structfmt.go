// Package structfmt renders any Go value as a compact structural string:
// fields of the most-derived type first, each embedded base after it, every
// level in name order. Unexported fields are read; fields tagged
// `structfmt:"-"` or `structfmt:"static"` are left out.
//
//	structfmt.Format(shark) // {organizationName: Ocean Trust, legs: 0, move: SWIM}
package structfmt

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/orchestrator"
	"github.com/goliatone/go-structfmt/pkg/render"
	"github.com/goliatone/go-structfmt/pkg/renderers/text"
)

// RenderOptions aliases render.RenderOptions for callers of Render.
type RenderOptions = render.RenderOptions

// Option configures a Formatter.
type Option = model.BuilderOption

// WithTagKey overrides the struct tag consulted for skip and static markers.
func WithTagKey(key string) Option {
	return model.WithTagKey(key)
}

// WithNested renders struct-valued fields recursively, bounded by maxDepth.
func WithNested(maxDepth int) Option {
	return model.WithNested(true, maxDepth)
}

// WithValues swaps the value renderer, usually a *values.Registry.
func WithValues(renderer model.ValueRenderer) Option {
	return model.WithValues(renderer)
}

// WithLogger sets the logger that receives unreadable-field warnings.
func WithLogger(logger *zap.Logger) Option {
	return model.WithLogger(logger)
}

// Formatter holds a configured builder. It is safe for concurrent use.
type Formatter struct {
	builder model.Builder
}

// New returns a Formatter applying options.
func New(options ...Option) *Formatter {
	return &Formatter{builder: model.NewBuilder(options...)}
}

var defaultFormatter = New()

// Format returns the structural string of object with default settings. A
// nil object gives "null" and a value without fields gives "{}".
func Format(object any) string {
	return defaultFormatter.Format(object)
}

// FormatWith formats object with a one-off configuration.
func FormatWith(object any, options ...Option) string {
	return New(options...).Format(object)
}

// Format returns the structural string of object.
func (f *Formatter) Format(object any) string {
	doc, err := f.builder.Build(object)
	if err != nil {
		return model.NullText
	}
	return text.Format(doc)
}

// Document exposes the structural model of object for custom rendering.
func (f *Formatter) Document(object any) (model.Document, error) {
	return f.builder.Build(object)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that want other renderers.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render formats object with the named renderer ("text", "console", "yaml",
// "html" or "openapi").
func Render(ctx context.Context, object any, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Object:   object,
		Renderer: rendererName,
	})
}
