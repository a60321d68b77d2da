package shell

import (
	"path"
	"sync"

	"github.com/interpretive-systems/histui/internal/label"
	"github.com/interpretive-systems/histui/internal/resource"
)

// LabelRegistry routes URIs to the highest-scoring label provider.
type LabelRegistry struct {
	mu        sync.RWMutex
	providers []label.Provider
}

// NewLabelRegistry creates an empty label registry.
func NewLabelRegistry() *LabelRegistry {
	return &LabelRegistry{}
}

// Register adds a provider.
func (r *LabelRegistry) Register(p label.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Resolve returns the label for u. With no claiming provider it falls
// back to the URI path's base name.
func (r *LabelRegistry) Resolve(u resource.URI) label.Label {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best label.Provider
	bestScore := 0
	for _, p := range r.providers {
		if s := p.CanHandle(u); s > bestScore {
			best, bestScore = p, s
		}
	}
	if best == nil {
		return label.Label{Name: path.Base(u.Path), Caption: u.Path}
	}
	return best.Resolve(u)
}
