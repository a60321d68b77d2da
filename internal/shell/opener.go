package shell

import (
	"context"
	"fmt"
	"sync"

	"github.com/interpretive-systems/histui/internal/resource"
)

// Opener handles opening a class of URIs. CanOpen returns a score; zero
// means the opener does not handle the URI, higher scores win.
type Opener interface {
	CanOpen(u resource.URI) int
	Open(ctx context.Context, u resource.URI) error
}

// OpenerRegistry routes open requests to the best-scoring opener.
type OpenerRegistry struct {
	mu      sync.RWMutex
	openers []Opener
}

// NewOpenerRegistry creates an empty opener registry.
func NewOpenerRegistry() *OpenerRegistry {
	return &OpenerRegistry{}
}

// Register adds an opener.
func (r *OpenerRegistry) Register(o Opener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openers = append(r.openers, o)
}

// Find returns the best opener for u, or nil when none claims it.
func (r *OpenerRegistry) Find(u resource.URI) Opener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best Opener
	bestScore := 0
	for _, o := range r.openers {
		if s := o.CanOpen(u); s > bestScore {
			best, bestScore = o, s
		}
	}
	return best
}

// Open dispatches u to the best opener.
func (r *OpenerRegistry) Open(ctx context.Context, u resource.URI) error {
	o := r.Find(u)
	if o == nil {
		return fmt.Errorf("open %s: no opener", u)
	}
	return o.Open(ctx, u)
}
