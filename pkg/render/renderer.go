package render

import (
	"context"

	"github.com/goliatone/go-structfmt/pkg/model"
)

// Renderer converts a Document into a byte representation (text, HTML, YAML,
// schema JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc model.Document, options RenderOptions) ([]byte, error)
}
