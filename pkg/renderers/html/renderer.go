// Package html renders documents as a sanitized definition list, one <dl> per
// level of the type chain that declares fields.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-structfmt/pkg/model"
	"github.com/goliatone/go-structfmt/pkg/render"
	rendertemplate "github.com/goliatone/go-structfmt/pkg/render/template"
	"github.com/goliatone/go-structfmt/pkg/render/template/gotemplate"
	"github.com/goliatone/go-structfmt/pkg/renderers/text"
)

// Name is the identifier the renderer registers under.
const Name = "html"

// Option configures the html renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	sanitize         bool
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// DocumentTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithoutSanitizer skips the bluemonday pass over the rendered markup. Only
// use it with trusted templates.
func WithoutSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitize = false
	}
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	sanitize  bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), sanitize: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, sanitize: cfg.sanitize}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the MIME type of the output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the document template and sanitizes the result.
func (r *Renderer) Render(ctx context.Context, doc model.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(DocumentTemplate, buildView(doc, options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	if r.sanitize {
		result = sanitizer().Sanitize(result)
	}
	return []byte(strings.TrimSpace(result)), nil
}

func buildView(doc model.Document, options render.RenderOptions) map[string]any {
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = doc.Type
	}

	levels := make([]map[string]any, 0, len(doc.Levels))
	for _, level := range doc.Levels {
		fields := make([]map[string]any, 0, len(level.Fields))
		for _, field := range level.Fields {
			fields = append(fields, map[string]any{
				"name": field.Name,
				"kind": string(field.Value.Kind),
				"text": text.Value(field.Value),
			})
		}
		levels = append(levels, map[string]any{
			"type":   level.Type,
			"fields": fields,
		})
	}

	return map[string]any{
		"type":     doc.Type,
		"title":    title,
		"is_null":  doc.Null,
		"is_empty": doc.Empty(),
		"levels":   levels,
	}
}
