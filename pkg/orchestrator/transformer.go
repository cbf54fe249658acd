package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-structfmt/pkg/model"
)

// RedactedText replaces the value of redacted fields.
const RedactedText = "***"

// Transformer mutates a Document after it is built and before decorators run.
// Implementations can rename, mask or drop entries.
type Transformer interface {
	Transform(ctx context.Context, doc *model.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *model.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *model.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// PresetTransformer applies declarative field patches loaded from JSON.
// Paths use dots to reach into nested documents:
//
//	{
//	  "fields": {
//	    "password": {"redact": true},
//	    "owner.email": {"drop": true},
//	    "legs": {"rename": "legCount"}
//	  }
//	}
//
// Paths that match nothing are ignored unless Strict is set. Renamed levels
// are re-sorted so each level stays in name order.
type PresetTransformer struct {
	document presetDocument
	strict   bool
}

type presetDocument struct {
	Fields map[string]fieldPatch `json:"fields"`
}

type fieldPatch struct {
	Rename string `json:"rename"`
	Redact bool   `json:"redact"`
	Drop   bool   `json:"drop"`
}

// NewPresetTransformer constructs a transformer from raw JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// NewRedactTransformer masks the named fields at every level of the chain
// that declares them. Nested documents are not searched.
func NewRedactTransformer(names ...string) *PresetTransformer {
	fields := make(map[string]fieldPatch, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			fields[trimmed] = fieldPatch{Redact: true}
		}
	}
	return &PresetTransformer{document: presetDocument{Fields: fields}}
}

// Strict makes unmatched paths an error.
func (t *PresetTransformer) Strict() *PresetTransformer {
	t.strict = true
	return t
}

// Transform applies the patches onto doc.
func (t *PresetTransformer) Transform(ctx context.Context, doc *model.Document) error {
	if doc == nil {
		return errors.New("preset transformer: document is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	paths := make([]string, 0, len(t.document.Fields))
	for path := range t.document.Fields {
		paths = append(paths, path)
	}
	// Longest paths first so nested patches apply before a parent is renamed
	// or dropped.
	sort.Slice(paths, func(i, j int) bool {
		if len(paths[i]) != len(paths[j]) {
			return len(paths[i]) > len(paths[j])
		}
		return paths[i] < paths[j]
	})

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !applyPatch(doc, strings.Split(path, "."), t.document.Fields[path]) && t.strict {
			return fmt.Errorf("preset transformer: field %q not found", path)
		}
	}
	return nil
}

// applyPatch patches every level declaring the field, so a name shadowed by a
// derived type is patched at both levels. A level declares a name at most once.
func applyPatch(doc *model.Document, segments []string, patch fieldPatch) bool {
	if doc == nil || len(segments) == 0 {
		return false
	}
	head := strings.TrimSpace(segments[0])
	matched := false
	for li := range doc.Levels {
		level := &doc.Levels[li]
		for fi := range level.Fields {
			field := &level.Fields[fi]
			if field.Name != head {
				continue
			}
			if len(segments) > 1 {
				if field.Value.Kind == model.ValueKindNested && applyPatch(field.Value.Nested, segments[1:], patch) {
					matched = true
				}
				break
			}
			matched = true
			switch {
			case patch.Drop:
				level.Fields = append(level.Fields[:fi], level.Fields[fi+1:]...)
			case patch.Redact:
				field.Value = model.Value{Kind: model.ValueKindScalar, Text: RedactedText}
			}
			if !patch.Drop && strings.TrimSpace(patch.Rename) != "" {
				field.Name = strings.TrimSpace(patch.Rename)
				sort.SliceStable(level.Fields, func(i, j int) bool {
					return level.Fields[i].Name < level.Fields[j].Name
				})
			}
			break
		}
	}
	return matched
}
