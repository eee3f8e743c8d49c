package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/devconsole/pkg/ports"
)

// ErrUnsupportedFormat is returned for files that are not yaml, toml or json.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Entry is one id of a set, with whatever other keys were written next to it.
type Entry struct {
	ID         string         `mapstructure:"id"`
	Attributes map[string]any `mapstructure:",remain"`
}

// File is an id catalog read from disk. Each top level key is a set:
//
//	cards:
//	  - Strike_R
//	  - id: Bash
//	    damage: 8
//	relics: [Anchor, Vajra]
//
// A File is safe for concurrent use; Reload swaps the sets atomically.
type File struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	sets map[string][]Entry
}

var _ ports.Watchable = (*File)(nil)

// Option configures a File.
type Option func(*File)

// WithLogger sets the logger used for reload and watch messages.
func WithLogger(logger *slog.Logger) Option {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Open loads the catalog at path. The format follows the extension.
func Open(path string, opts ...Option) (*File, error) {
	f := &File{
		path:   filepath.Clean(path),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the catalog location.
func (f *File) Path() string {
	return f.path
}

// Reload reads the file again. On error the previous sets are kept.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	raw, err := decode(f.path, data)
	if err != nil {
		return fmt.Errorf("failed to parse catalog %s: %w", f.path, err)
	}
	sets, err := toSets(raw)
	if err != nil {
		return fmt.Errorf("invalid catalog %s: %w", f.path, err)
	}

	f.mu.Lock()
	f.sets = sets
	f.mu.Unlock()
	f.logger.Debug("catalog loaded", "path", f.path, "sets", len(sets))
	return nil
}

// Sets returns the set names in sorted order.
func (f *File) Sets() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.sets))
	for name := range f.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set returns a live view of the ids of one set. Reloads show up on the
// next call; an unknown set is empty.
func (f *File) Set(name string) ports.IDSource {
	return ports.IDSourceFunc(func() []string {
		f.mu.RLock()
		defer f.mu.RUnlock()
		entries := f.sets[name]
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		return ids
	})
}

// Entries returns a copy of the entries of a set.
func (f *File) Entries(name string) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Entry(nil), f.sets[name]...)
}

// Entry finds id in a set.
func (f *File) Entry(set, id string) (Entry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, e := range f.sets[set] {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Watch reloads the catalog whenever the file changes and signals after
// every successful reload. The directory is watched rather than the file,
// so editors that replace the file on save are picked up.
func (f *File) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", f.path, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != f.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := f.Reload(); err != nil {
					f.logger.Warn("catalog reload failed", "path", f.path, "err", err)
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				f.logger.Warn("catalog watcher error", "err", err)
			}
		}
	}()
	return ch, nil
}

func decode(path string, data []byte) (map[string]any, error) {
	raw := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return raw, nil
}

func toSets(raw map[string]any) (map[string][]Entry, error) {
	sets := make(map[string][]Entry, len(raw))
	for name, value := range raw {
		var items []any
		switch v := value.(type) {
		case []any:
			items = v
		case []map[string]any:
			// toml arrays of tables
			for _, m := range v {
				items = append(items, m)
			}
		default:
			return nil, fmt.Errorf("set %q must be a list, got %T", name, value)
		}

		entries := make([]Entry, 0, len(items))
		for i, item := range items {
			e, err := toEntry(item)
			if err != nil {
				return nil, fmt.Errorf("set %q item %d: %w", name, i, err)
			}
			entries = append(entries, e)
		}
		sets[name] = entries
	}
	return sets, nil
}

func toEntry(item any) (Entry, error) {
	switch v := item.(type) {
	case string:
		return Entry{ID: v}, nil
	case map[string]any:
		var e Entry
		if err := mapstructure.Decode(v, &e); err != nil {
			return Entry{}, err
		}
		if e.ID == "" {
			return Entry{}, errors.New("missing id")
		}
		return e, nil
	default:
		return Entry{}, fmt.Errorf("expected an id or a table, got %T", item)
	}
}
