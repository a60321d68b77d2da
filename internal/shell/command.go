// Package shell holds the application's contribution registries: commands,
// menus, keybindings, openers, decorations, label providers, and widget
// factories. The Container wires one provider per capability at startup;
// registries are singletons for the life of the process.
package shell

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Command is an invocable action addressed by a stable identifier.
type Command struct {
	ID    string
	Label string
}

// CommandHandler executes a command. Arguments are command-specific.
type CommandHandler func(ctx context.Context, args ...any) error

// CommandRegistry maps command IDs to their handlers.
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[string]Command
	handlers map[string]CommandHandler
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]Command),
		handlers: make(map[string]CommandHandler),
	}
}

// Register binds a handler to a command. Re-registering an ID replaces the
// previous handler.
func (r *CommandRegistry) Register(cmd Command, h CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
	r.handlers[cmd.ID] = h
}

// Execute runs the handler registered for id.
func (r *CommandRegistry) Execute(ctx context.Context, id string, args ...any) error {
	r.mu.RLock()
	h := r.handlers[id]
	r.mu.RUnlock()
	if h == nil {
		return fmt.Errorf("command %q: not registered", id)
	}
	return h(ctx, args...)
}

// Has reports whether a command is registered.
func (r *CommandRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[id]
	return ok
}

// Get returns the command metadata for id.
func (r *CommandRegistry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[id]
	return c, ok
}

// List returns all registered command IDs, sorted.
func (r *CommandRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
