package model

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-structfmt/internal/model"
	"github.com/goliatone/go-structfmt/pkg/values"
)

// Builder converts arbitrary values into documents.
type Builder interface {
	Build(value any) (Document, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	tagKey   string
	nested   bool
	maxDepth int
	values   ValueRenderer
	logger   *zap.Logger
}

// WithTagKey overrides the struct tag consulted for skip/static markers.
func WithTagKey(key string) BuilderOption {
	return func(opts *builderOptions) {
		opts.tagKey = key
	}
}

// WithNested renders struct-valued fields recursively, bounded by maxDepth.
// A non-positive maxDepth keeps the default bound.
func WithNested(enabled bool, maxDepth int) BuilderOption {
	return func(opts *builderOptions) {
		opts.nested = enabled
		opts.maxDepth = maxDepth
	}
}

// WithValues swaps the value renderer, usually a *values.Registry with extra
// rules registered.
func WithValues(renderer ValueRenderer) BuilderOption {
	return func(opts *builderOptions) {
		opts.values = renderer
	}
}

// WithLogger sets the logger used to report unreadable fields.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(opts *builderOptions) {
		opts.logger = logger
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.values == nil {
		cfg.values = values.NewRegistry()
	}

	return model.New(model.Options{
		TagKey:   cfg.tagKey,
		Nested:   cfg.nested,
		MaxDepth: cfg.maxDepth,
		Values:   cfg.values,
		Logger:   cfg.logger,
	})
}
