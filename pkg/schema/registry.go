// Package schema aggregates crud controller metadata into the OpenAPI
// document served next to the catalog and activity resources.
package schema

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-router"
	"github.com/macromate/go-macromate/pkg/types"
)

// Snapshot is the compiled document handed to listeners after a change.
type Snapshot struct {
	GeneratedAt time.Time
	Resources   []string
	Document    map[string]any
}

// Listener observes registry changes.
type Listener func(context.Context, Snapshot)

// Registry keeps one metadata snapshot per resource name.
type Registry struct {
	mu        sync.RWMutex
	resources map[string]router.ResourceMetadata
	listeners []Listener

	info   router.OpenAPIInfo
	tags   []string
	clock  types.Clock
	logger types.Logger
}

// Option customizes a Registry.
type Option func(*Registry)

// NewRegistry returns an empty registry titled "Macromate API".
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		resources: make(map[string]router.ResourceMetadata),
		info: router.OpenAPIInfo{
			Title:   "Macromate API",
			Version: "1.0.0",
		},
		clock:  types.SystemClock{},
		logger: types.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	return reg
}

// WithInfo overrides the non-empty fields of the OpenAPI info block.
func WithInfo(info router.OpenAPIInfo) Option {
	return func(r *Registry) {
		if info.Title != "" {
			r.info.Title = info.Title
		}
		if info.Version != "" {
			r.info.Version = info.Version
		}
		if info.Description != "" {
			r.info.Description = info.Description
		}
	}
}

// WithTags sets the document level tags.
func WithTags(tags ...string) Option {
	return func(r *Registry) {
		r.tags = append([]string(nil), tags...)
	}
}

func WithClock(clock types.Clock) Option {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func WithLogger(logger types.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Register records the provider metadata. A later registration for the same
// resource replaces the earlier one. Providers without a name are ignored.
func (r *Registry) Register(provider router.MetadataProvider) {
	if provider == nil {
		return
	}
	meta := provider.GetMetadata()
	if meta.Name == "" {
		return
	}

	r.mu.Lock()
	r.resources[meta.Name] = meta
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	r.logger.Debug("schema: resource registered", "resource", meta.Name)
	if len(listeners) == 0 {
		return
	}
	snap := Snapshot{
		GeneratedAt: r.clock.Now(),
		Resources:   r.Resources(),
		Document:    r.Document(),
	}
	for _, listener := range listeners {
		listener(context.Background(), snap)
	}
}

// RegisterAll registers each provider in order.
func (r *Registry) RegisterAll(providers ...router.MetadataProvider) {
	for _, provider := range providers {
		r.Register(provider)
	}
}

// Subscribe adds a listener called after every registration.
func (r *Registry) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// Resources lists the registered resource names in sorted order.
func (r *Registry) Resources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Document compiles the OpenAPI document, or returns nil while empty.
func (r *Registry) Document() map[string]any {
	names := r.Resources()
	if len(names) == 0 {
		return nil
	}

	r.mu.RLock()
	providers := make([]router.MetadataProvider, 0, len(names))
	for _, name := range names {
		providers = append(providers, staticProvider(r.resources[name]))
	}
	info := r.info
	tags := append([]string(nil), r.tags...)
	r.mu.RUnlock()

	aggregator := router.NewMetadataAggregator()
	if len(tags) > 0 {
		aggregator.SetTags(tags)
	}
	aggregator.SetInfo(info)
	aggregator.AddProviders(providers...)
	aggregator.Compile()
	return aggregator.GenerateOpenAPI()
}

// Handler serves the compiled document, answering 204 while empty.
func (r *Registry) Handler() router.HandlerFunc {
	return func(ctx router.Context) error {
		doc := r.Document()
		if len(doc) == 0 {
			return ctx.NoContent(http.StatusNoContent)
		}
		return ctx.JSON(http.StatusOK, doc)
	}
}

type staticProvider router.ResourceMetadata

func (s staticProvider) GetMetadata() router.ResourceMetadata {
	return router.ResourceMetadata(s)
}
