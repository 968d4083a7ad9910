package forms

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-knowledge/internal/logging"
	"github.com/goliatone/go-knowledge/pkg/interfaces"
)

// Registry provides read access to form definitions by name. The markdown
// engine treats registered forms as immutable; Register is only called during
// host bootstrap or admin flows.
type Registry interface {
	Register(ctx context.Context, form Form) (Form, error)
	Get(ctx context.Context, name string) (Form, error)
	List(ctx context.Context) ([]Form, error)
}

// RegistryOption configures the in-memory registry at construction time.
type RegistryOption func(*memoryRegistry)

// WithLogger attaches a logger to the registry.
func WithLogger(logger interfaces.Logger) RegistryOption {
	return func(r *memoryRegistry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewMemoryRegistry constructs a thread-safe in-memory form registry.
func NewMemoryRegistry(opts ...RegistryOption) Registry {
	registry := &memoryRegistry{
		forms:  map[string]Form{},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(registry)
	}
	return registry
}

type memoryRegistry struct {
	mu     sync.RWMutex
	forms  map[string]Form
	logger interfaces.Logger
}

func (r *memoryRegistry) Register(ctx context.Context, form Form) (Form, error) {
	if err := form.Validate(); err != nil {
		return Form{}, err
	}

	key := registryKey(form.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.forms[key]; ok && form.Version < existing.Version {
		return Form{}, ErrFormVersionConflict
	}

	stored := form.Clone()
	r.forms[key] = stored
	r.logger.Debug("form registered", "form", stored.Name, "version", stored.Version)
	return stored.Clone(), nil
}

func (r *memoryRegistry) Get(ctx context.Context, name string) (Form, error) {
	key := registryKey(name)
	if key == "" {
		return Form{}, ErrFormNameRequired
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.forms[key]
	if !ok {
		return Form{}, ErrFormNotFound
	}
	return form.Clone(), nil
}

func (r *memoryRegistry) List(ctx context.Context) ([]Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Form, 0, len(r.forms))
	for _, form := range r.forms {
		out = append(out, form.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
