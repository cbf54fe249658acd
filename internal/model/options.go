package model

import "go.uber.org/zap"

// DefaultMaxDepth bounds nested rendering when Options.MaxDepth is unset.
const DefaultMaxDepth = 8

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// TagKey names the struct tag holding the skip and static markers.
	TagKey string
	// Nested renders struct-valued fields as documents instead of plain text.
	Nested bool
	// MaxDepth bounds nested rendering. Values deeper than this fall back to
	// plain text.
	MaxDepth int
	// Values renders individual field values.
	Values ValueRenderer
	// Logger receives diagnostics for fields that cannot be read.
	Logger *zap.Logger
}

func defaultOptions() Options {
	return Options{
		TagKey:   DefaultTagKey,
		MaxDepth: DefaultMaxDepth,
		Values:   BuiltinValues{},
		Logger:   zap.NewNop(),
	}
}
