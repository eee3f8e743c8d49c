package ports

import "context"

// IDSource lists domain ids (cards, relics, potions...) in their display
// form. Implementations are queried on every autocomplete request and must
// not return a slice they keep mutating.
type IDSource interface {
	IDs() []string
}

// IDSourceFunc adapts a plain function to IDSource.
type IDSourceFunc func() []string

// IDs calls f.
func (f IDSourceFunc) IDs() []string {
	return f()
}

// StaticIDs is an IDSource over a fixed list.
type StaticIDs []string

// IDs returns a copy of the list.
func (s StaticIDs) IDs() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for hot-reload of id catalogs.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying data changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
