package values

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-structfmt/internal/model"
)

// Built-in value renderer identifiers exposed by the registry.
const (
	RendererNull     = "null"
	RendererSequence = "sequence"
	RendererScalar   = "scalar"
)

// ErrNoRenderer is returned when no registered matcher accepts a value.
var ErrNoRenderer = errors.New("values: no renderer matched")

// Matcher decides whether a renderer should handle the supplied value.
type Matcher func(v reflect.Value) bool

// RenderFunc produces the rendered form of a value. Returning an error marks
// the field unreadable; the builder omits it and logs the failure.
type RenderFunc func(v reflect.Value) (model.Value, error)

type rule struct {
	name     string
	priority int
	match    Matcher
	render   RenderFunc
	order    int
}

// Registry selects value renderers based on registered matchers. Higher
// priority wins; ties go to the most recent registration so callers can
// override a built-in by registering under the same priority. An empty
// registry never resolves a renderer.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in renderers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a renderer with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher, render RenderFunc) {
	if r == nil || matcher == nil || render == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		render:   render,
		order:    len(r.rules),
	})
}

// Resolve returns the name of the renderer that handles v.
func (r *Registry) Resolve(v reflect.Value) (string, bool) {
	entry, ok := r.resolve(v)
	if !ok {
		return "", false
	}
	return entry.name, true
}

// RenderValue implements model.ValueRenderer.
func (r *Registry) RenderValue(v reflect.Value) (model.Value, error) {
	entry, ok := r.resolve(v)
	if !ok {
		return model.Value{}, ErrNoRenderer
	}
	return entry.render(v)
}

// Names lists registered renderer names in resolution order.
func (r *Registry) Names() []string {
	rules := r.sorted()
	names := make([]string, 0, len(rules))
	for _, entry := range rules {
		names = append(names, entry.name)
	}
	return names
}

func (r *Registry) resolve(v reflect.Value) (rule, bool) {
	for _, entry := range r.sorted() {
		if entry.match(v) {
			return entry, true
		}
	}
	return rule{}, false
}

func (r *Registry) sorted() []rule {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return nil
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order > rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	return rules
}

func (r *Registry) registerBuiltins() {
	r.Register(RendererNull, 100, model.IsNil, func(reflect.Value) (model.Value, error) {
		return model.Value{Kind: model.ValueKindNull, Text: model.NullText}, nil
	})

	r.Register(RendererSequence, 90, model.IsSequence, func(v reflect.Value) (model.Value, error) {
		return model.Value{Kind: model.ValueKindSequence, Elements: model.Elements(v)}, nil
	})

	r.Register(RendererScalar, 0, func(reflect.Value) bool { return true }, func(v reflect.Value) (model.Value, error) {
		return model.Value{Kind: model.ValueKindScalar, Text: model.PlainText(v)}, nil
	})
}
