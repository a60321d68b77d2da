package shell

import (
	"sort"
	"sync"
)

// MenuItem contributes one entry to a menu path, invoking a command.
type MenuItem struct {
	CommandID string
	Label     string
	Order     int
}

// MenuRegistry groups menu items under string menu paths
// (e.g. "history/context").
type MenuRegistry struct {
	mu    sync.RWMutex
	items map[string][]MenuItem
}

// NewMenuRegistry creates an empty menu registry.
func NewMenuRegistry() *MenuRegistry {
	return &MenuRegistry{items: make(map[string][]MenuItem)}
}

// Register adds an item under a menu path. Items are kept sorted by Order.
func (r *MenuRegistry) Register(path string, item MenuItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := append(r.items[path], item)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	r.items[path] = items
}

// ItemsFor returns the items registered under a menu path.
func (r *MenuRegistry) ItemsFor(path string) []MenuItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]MenuItem, len(r.items[path]))
	copy(items, r.items[path])
	return items
}

// Paths returns all menu paths with at least one item, sorted.
func (r *MenuRegistry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.items))
	for p := range r.items {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
