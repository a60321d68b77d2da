package shell

import (
	"sync"

	"github.com/interpretive-systems/histui/internal/history"
)

// Decoration describes how a change status is rendered: the badge letter
// and its ANSI 256 color.
type Decoration struct {
	Letter string
	Color  string
}

// DecorationRegistry maps change statuses to their decorations.
type DecorationRegistry struct {
	mu   sync.RWMutex
	byID map[history.ChangeStatus]Decoration
}

// NewDecorationRegistry creates an empty decoration registry.
func NewDecorationRegistry() *DecorationRegistry {
	return &DecorationRegistry{byID: make(map[history.ChangeStatus]Decoration)}
}

// Register sets the decoration for a status.
func (r *DecorationRegistry) Register(s history.ChangeStatus, d Decoration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s] = d
}

// For returns the decoration for a status, falling back to an uncolored
// status letter.
func (r *DecorationRegistry) For(s history.ChangeStatus) Decoration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.byID[s]; ok {
		return d
	}
	return Decoration{Letter: s.Letter()}
}
