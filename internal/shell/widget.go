package shell

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Widget is a shell-managed UI unit. Kind identifies the factory that
// built it; ID is unique per instance.
type Widget interface {
	ID() string
	Kind() string
	Dispose()
}

// WidgetFactory builds a widget instance of one kind. The instance id is
// assigned by the registry.
type WidgetFactory func(id string) (Widget, error)

// WidgetRegistry creates and tracks widgets by kind. GetOrCreate gives
// each kind singleton semantics, matching panels that exist at most once.
type WidgetRegistry struct {
	mu        sync.RWMutex
	factories map[string]WidgetFactory
	singleton map[string]Widget
}

// NewWidgetRegistry creates an empty widget registry.
func NewWidgetRegistry() *WidgetRegistry {
	return &WidgetRegistry{
		factories: make(map[string]WidgetFactory),
		singleton: make(map[string]Widget),
	}
}

// RegisterFactory binds a factory to a widget kind.
func (r *WidgetRegistry) RegisterFactory(kind string, f WidgetFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Create builds a fresh widget of the given kind.
func (r *WidgetRegistry) Create(kind string) (Widget, error) {
	r.mu.RLock()
	f := r.factories[kind]
	r.mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("widget kind %q: no factory", kind)
	}
	return f(kind + ":" + uuid.NewString())
}

// GetOrCreate returns the existing instance of kind, building it on first
// use.
func (r *WidgetRegistry) GetOrCreate(kind string) (Widget, error) {
	r.mu.RLock()
	w := r.singleton[kind]
	r.mu.RUnlock()
	if w != nil {
		return w, nil
	}
	w, err := r.Create(kind)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.singleton[kind]; existing != nil {
		return existing, nil
	}
	r.singleton[kind] = w
	return w, nil
}

// DisposeAll disposes every tracked singleton widget.
func (r *WidgetRegistry) DisposeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for kind, w := range r.singleton {
		w.Dispose()
		delete(r.singleton, kind)
	}
}
