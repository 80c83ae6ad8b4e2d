// Package render holds the registry of built-in document templates. Each
// template knows how to produce one styled document from merged sample and
// override data; the format-specific renderers live in subpackages.
package render

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Meta describes a built-in template.
type Meta struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	Description  string   `json:"description"`
	Format       string   `json:"format"`
	Engine       string   `json:"engine"`
	ColorSchemes []string `json:"color_schemes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Job carries everything a renderer needs to produce one document.
type Job struct {
	OutputPath  string
	Data        Data
	Language    string
	ColorScheme string
	PageSize    string
}

// Renderer produces one document design.
type Renderer interface {
	Meta() Meta
	Render(ctx context.Context, job Job) error
}

// Func adapts a function into a Renderer.
type Func struct {
	Info Meta
	Fn   func(ctx context.Context, job Job) error
}

func (f Func) Meta() Meta { return f.Info }

func (f Func) Render(ctx context.Context, job Job) error { return f.Fn(ctx, job) }

// Registry is a named collection of renderers.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Renderer{}}
}

// Register adds a renderer, replacing any previous renderer with that name.
func (r *Registry) Register(renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[renderer.Meta().Name] = renderer
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.byName[name]
	return renderer, ok
}

// List returns all renderers sorted by name.
func (r *Registry) List() []Renderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := lo.Values(r.byName)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Meta().Name < out[j].Meta().Name
	})
	return out
}

// Names returns the sorted names of all registered renderers.
func (r *Registry) Names() []string {
	return lo.Map(r.List(), func(renderer Renderer, _ int) string {
		return renderer.Meta().Name
	})
}

// ForFormat returns renderers producing the given format, sorted by name.
func (r *Registry) ForFormat(format string) []Renderer {
	return lo.Filter(r.List(), func(renderer Renderer, _ int) bool {
		return renderer.Meta().Format == format
	})
}

// Render looks up and runs a renderer in one step.
func (r *Registry) Render(ctx context.Context, name string, job Job) error {
	renderer, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("unknown template: %s", name)
	}
	return renderer.Render(ctx, job)
}

// Builtin is the registry populated by the template subpackages.
var Builtin = NewRegistry()
