package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/devconsole/pkg/domain"
)

// Registry maps command words to the root node of their chain.
// Each console owns its own registry; there is no global command table.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]domain.Node
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]domain.Node),
	}
}

// Register adds a command to the registry.
// If a command with the same word exists, it is overwritten.
func (r *Registry) Register(word string, root domain.Node) error {
	if word == "" {
		return fmt.Errorf("registry: empty command word")
	}
	if root == nil {
		return fmt.Errorf("registry: nil root node for %q", word)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[word] = root
	return nil
}

// Lookup returns the root node registered for word.
func (r *Registry) Lookup(word string) (domain.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	root, ok := r.commands[word]
	return root, ok
}

// Remove unregisters word and reports whether it was registered.
func (r *Registry) Remove(word string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.commands[word]
	delete(r.commands, word)
	return ok
}

// Names returns the registered command words in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
