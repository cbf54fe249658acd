package render

import (
	"strings"

	"github.com/goliatone/go-structfmt/pkg/model"
)

// FieldSubset narrows a document to some of its levels or fields. Empty
// filters match everything; when both are set a field must match both.
type FieldSubset struct {
	// Levels lists type names, either qualified ("fixtures.Animal") or bare
	// ("Animal"). Matching ignores case.
	Levels []string
	// Fields lists field names. Matching is exact.
	Fields []string
}

// Empty reports whether the subset filters nothing.
func (s FieldSubset) Empty() bool {
	return len(normaliseTokens(s.Levels)) == 0 && len(exactTokens(s.Fields)) == 0
}

// ApplySubset returns doc with the fields outside subset removed. Levels keep
// their position even when emptied so the chain stays intact. doc is not
// modified.
func ApplySubset(doc model.Document, subset FieldSubset) model.Document {
	matcher := newSubsetMatcher(subset)
	if matcher.empty() || doc.Null {
		return doc
	}

	levels := make([]model.Level, len(doc.Levels))
	for i, level := range doc.Levels {
		levels[i] = model.Level{Type: level.Type, Package: level.Package}
		if !matcher.matchesLevel(level.Type) {
			continue
		}
		for _, field := range level.Fields {
			if matcher.matchesField(field.Name) {
				levels[i].Fields = append(levels[i].Fields, field)
			}
		}
	}
	doc.Levels = levels
	return doc
}

type subsetMatcher struct {
	levels map[string]struct{}
	fields map[string]struct{}
}

func newSubsetMatcher(subset FieldSubset) subsetMatcher {
	return subsetMatcher{
		levels: normaliseTokens(subset.Levels),
		fields: exactTokens(subset.Fields),
	}
}

func (m subsetMatcher) empty() bool {
	return len(m.levels) == 0 && len(m.fields) == 0
}

func (m subsetMatcher) matchesLevel(typeName string) bool {
	if len(m.levels) == 0 {
		return true
	}
	full := normaliseToken(typeName)
	if _, ok := m.levels[full]; ok {
		return true
	}
	if idx := strings.LastIndex(full, "."); idx >= 0 {
		_, ok := m.levels[full[idx+1:]]
		return ok
	}
	return false
}

func (m subsetMatcher) matchesField(name string) bool {
	if len(m.fields) == 0 {
		return true
	}
	_, ok := m.fields[name]
	return ok
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		token := normaliseToken(value)
		if token == "" {
			continue
		}
		result[token] = struct{}{}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func exactTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		if token := strings.TrimSpace(value); token != "" {
			result[token] = struct{}{}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normaliseToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
