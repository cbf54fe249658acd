package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-structfmt/pkg/config"
	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
	"github.com/goliatone/go-structfmt/pkg/renderers/console"
	"github.com/goliatone/go-structfmt/pkg/renderers/html"
	"github.com/goliatone/go-structfmt/pkg/renderers/openapi"
	"github.com/goliatone/go-structfmt/pkg/renderers/text"
	"github.com/goliatone/go-structfmt/pkg/renderers/yaml"
)

const defaultRendererName = text.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBuilder injects a custom document builder.
func WithBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithBuilderOptions configures the default builder. Ignored when WithBuilder
// supplies one.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return func(o *Orchestrator) {
		o.builderOptions = append(o.builderOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformers registers transformers that run, in order, after the
// document is built.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithDecorators registers decorators that run against the document after
// transformers and before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger sets the logger shared with the default builder.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConfig maps a loaded configuration onto the orchestrator: builder tag
// key and nesting, default renderer, colour and redacted fields.
func WithConfig(cfg config.Config) Option {
	return func(o *Orchestrator) {
		cfg.ApplyDefaults()
		o.builderOptions = append(o.builderOptions,
			model.WithTagKey(cfg.TagKey),
			model.WithNested(cfg.Nested, cfg.MaxDepth),
		)
		o.defaultRenderer = cfg.Renderer
		o.color = cfg.Color
		if len(cfg.Redact) > 0 {
			o.transformers = append(o.transformers, NewRedactTransformer(cfg.Redact...))
		}
	}
}

// Orchestrator coordinates the pipeline from an arbitrary value to rendered
// output. Defaults register every built-in renderer with text as the fallback.
type Orchestrator struct {
	builder         model.Builder
	builderOptions  []model.BuilderOption
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	decorators      []model.Decorator
	logger          *zap.Logger
	color           bool
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single formatting call.
type Request struct {
	// Object is the value to format. A nil Object renders as null.
	Object any

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request renderer settings.
	RenderOptions render.RenderOptions
}

// Generate builds, transforms, decorates and renders req.Object.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	doc, err := o.Document(ctx, req.Object)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if o.color {
		options.Color = true
	}
	if !options.Subset.Empty() {
		doc = render.ApplySubset(doc, options.Subset)
	}

	output, err := renderer.Render(ctx, doc, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Debug("structfmt: rendered",
		zap.String("renderer", renderer.Name()),
		zap.String("type", doc.Type),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// Document runs the pipeline up to, but not including, rendering.
func (o *Orchestrator) Document(ctx context.Context, object any) (model.Document, error) {
	if ctx == nil {
		return model.Document{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.Document{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return model.Document{}, err
		}
	}

	doc, err := o.builder.Build(object)
	if err != nil {
		return model.Document{}, fmt.Errorf("orchestrator: build document: %w", err)
	}
	if err := o.applyTransformers(ctx, &doc); err != nil {
		return model.Document{}, err
	}
	if err := o.applyDecorators(&doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// Registry exposes the renderer registry, mainly for listing names.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// DefaultRenderer reports the renderer used when a request names none.
func (o *Orchestrator) DefaultRenderer() string {
	return o.defaultRenderer
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, doc *model.Document) error {
	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		if err := transformer.Transform(ctx, doc); err != nil {
			return fmt.Errorf("orchestrator: transform document: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDecorators(doc *model.Document) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(doc); err != nil {
			return fmt.Errorf("orchestrator: decorate document: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.builder == nil {
		options := append([]model.BuilderOption{model.WithLogger(o.logger)}, o.builderOptions...)
		o.builder = model.NewBuilder(options...)
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

// DefaultRegistry returns a registry holding every built-in renderer.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry(
		text.New(),
		console.New(),
		yaml.New(),
		openapi.New(),
	)
	htmlRenderer, err := html.New()
	if err != nil {
		return registry, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return registry, err
	}
	return registry, nil
}
