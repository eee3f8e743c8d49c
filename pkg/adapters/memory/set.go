package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/devconsole/pkg/ports"
)

// Set implements ports.IDSource and ports.Watchable in memory.
// Safe for concurrent use.
type Set struct {
	mu       sync.RWMutex
	ids      map[string]struct{}
	watchers map[chan struct{}]struct{}
}

var (
	_ ports.IDSource  = (*Set)(nil)
	_ ports.Watchable = (*Set)(nil)
)

// NewSet creates a set seeded with ids.
func NewSet(ids ...string) *Set {
	s := &Set{
		ids:      make(map[string]struct{}, len(ids)),
		watchers: make(map[chan struct{}]struct{}),
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// IDs returns the ids in sorted order.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Add inserts ids and notifies the watchers if anything changed.
func (s *Set) Add(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, id := range ids {
		if _, ok := s.ids[id]; !ok {
			s.ids[id] = struct{}{}
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// Remove deletes ids and notifies the watchers if anything changed.
func (s *Set) Remove(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			delete(s.ids, id)
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// Watch returns a channel signaled after every change. Signals coalesce
// while the receiver is busy. The channel is closed when ctx is done.
func (s *Set) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// notify must be called with mu held.
func (s *Set) notify() {
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
