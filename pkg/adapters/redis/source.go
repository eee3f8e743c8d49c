package redis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/devconsole/pkg/ports"
)

const (
	// DefaultPrefix namespaces every key and channel of the source.
	DefaultPrefix = "devconsole:"
	// DefaultTimeout bounds each lookup, since autocomplete cannot wait.
	DefaultTimeout = 500 * time.Millisecond
)

// Source implements ports.IDSource over a redis set. Writers going through
// Add and Remove publish a change notification that Watch relays.
type Source struct {
	client  *backend.Client
	set     string
	prefix  string
	timeout time.Duration
	logger  *slog.Logger
}

var (
	_ ports.IDSource  = (*Source)(nil)
	_ ports.Watchable = (*Source)(nil)
)

// Option configures a Source.
type Option func(*Source)

// WithPrefix sets the key prefix. Defaults to DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// WithTimeout bounds each IDs call.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used to report lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewClient creates a client from a redis:// URL.
func NewClient(url string) (*backend.Client, error) {
	opts, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return backend.NewClient(opts), nil
}

// NewSource creates a source reading the set named set.
func NewSource(client *backend.Client, set string, opts ...Option) *Source {
	s := &Source{
		client:  client,
		set:     set,
		prefix:  DefaultPrefix,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key is the redis key holding the ids.
func (s *Source) Key() string {
	return s.prefix + s.set
}

func (s *Source) channel() string {
	return s.prefix + "changed:" + s.set
}

// IDs returns the members of the set in sorted order. Lookup errors are
// logged and yield no ids, so autocomplete degrades instead of failing.
func (s *Source) IDs() []string {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	ids, err := s.client.SMembers(ctx, s.Key()).Result()
	if err != nil {
		s.logger.Warn("redis id lookup failed", "key", s.Key(), "err", err)
		return nil
	}
	sort.Strings(ids)
	return ids
}

// Add inserts ids into the set and notifies watchers.
func (s *Source) Add(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := s.client.SAdd(ctx, s.Key(), members...).Err(); err != nil {
		return fmt.Errorf("redis error adding ids: %w", err)
	}
	return s.notify(ctx)
}

// Remove deletes ids from the set and notifies watchers.
func (s *Source) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := s.client.SRem(ctx, s.Key(), members...).Err(); err != nil {
		return fmt.Errorf("redis error removing ids: %w", err)
	}
	return s.notify(ctx)
}

func (s *Source) notify(ctx context.Context) error {
	if err := s.client.Publish(ctx, s.channel(), s.set).Err(); err != nil {
		return fmt.Errorf("redis error publishing change: %w", err)
	}
	return nil
}

// Watch signals whenever a change is published for the set. The
// subscription is confirmed before Watch returns.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	sub := s.client.Subscribe(ctx, s.channel())
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis error subscribing to %s: %w", s.channel(), err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}
