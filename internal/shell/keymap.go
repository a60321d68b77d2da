package shell

import "sync"

// Keybinding maps a key chord to a command within a context. An empty
// context matches everywhere.
type Keybinding struct {
	Key       string
	CommandID string
	Context   string
}

// KeymapRegistry resolves key presses to commands. Context-scoped
// bindings win over global ones; among equals the last registration wins,
// so user bindings can shadow defaults.
type KeymapRegistry struct {
	mu       sync.RWMutex
	bindings []Keybinding
}

// NewKeymapRegistry creates an empty keymap.
func NewKeymapRegistry() *KeymapRegistry {
	return &KeymapRegistry{}
}

// Register adds a keybinding.
func (r *KeymapRegistry) Register(b Keybinding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
}

// Resolve returns the command bound to key in the active context.
func (r *KeymapRegistry) Resolve(key, activeContext string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var global string
	var scoped string
	for _, b := range r.bindings {
		if b.Key != key {
			continue
		}
		switch b.Context {
		case "":
			global = b.CommandID
		case activeContext:
			scoped = b.CommandID
		}
	}
	if scoped != "" {
		return scoped, true
	}
	if global != "" {
		return global, true
	}
	return "", false
}

// Bindings returns a copy of all registered bindings.
func (r *KeymapRegistry) Bindings() []Keybinding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Keybinding, len(r.bindings))
	copy(out, r.bindings)
	return out
}
