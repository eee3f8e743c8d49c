package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/internal/sandbox"
	"github.com/aretw0/devconsole/pkg/adapters/catalog"
	"github.com/aretw0/devconsole/pkg/adapters/redis"
	"github.com/aretw0/devconsole/pkg/observability"
	"github.com/aretw0/devconsole/pkg/ports"
)

// CardSet is the catalog set and redis key suffix holding the card ids.
const CardSet = "cards"

// session is a console wired to the sandbox host and its card source.
type session struct {
	console *devconsole.Console
	host    *sandbox.Host
	// watch reports card source changes. Nil when nothing is watched.
	watch ports.Watchable
	close func()
}

// newSession builds the console. reg may be nil to skip metrics.
func (a *app) newSession(out io.Writer, reg prometheus.Registerer) (*session, error) {
	s := &session{close: func() {}}

	library, err := a.library(s)
	if err != nil {
		return nil, err
	}

	hooks := observability.LoggingHooks(a.logger)
	if reg != nil && a.cfg.Metrics.Enabled {
		m, err := observability.NewMetrics(reg)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = hooks.Merge(m.Hooks())
	}

	s.console = devconsole.New(
		devconsole.WithOutput(out),
		devconsole.WithLogger(a.logger),
		devconsole.WithLifecycleHooks(hooks),
	)
	s.host = sandbox.NewHost(library, s.console.Logf)
	if err := s.console.RegisterAll(s.host.Commands()); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// library picks where card ids come from: a redis set, a catalog file, or
// the built-in cards. Card stats always come from the catalog when one is
// configured.
func (a *app) library(s *session) (*sandbox.Library, error) {
	var (
		file  *catalog.File
		specs sandbox.CardSpecs
	)
	if path := a.cfg.Catalog.Path; path != "" {
		var err error
		file, err = catalog.Open(path, catalog.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		specs = sandbox.AttributeSpecs(func(id string) (map[string]any, bool) {
			e, ok := file.Entry(CardSet, id)
			return e.Attributes, ok
		})
		if a.cfg.Catalog.Watch {
			s.watch = file
		}
	}

	if url := a.cfg.Redis.URL; url != "" {
		client, err := redis.NewClient(url)
		if err != nil {
			return nil, err
		}
		s.close = func() { _ = client.Close() }
		src := redis.NewSource(client, CardSet,
			redis.WithPrefix(a.cfg.Redis.Prefix),
			redis.WithLogger(a.logger),
		)
		s.watch = src
		a.logger.Debug("card ids from redis", "key", src.Key())
		return sandbox.NewLibrary(src, specs), nil
	}

	if file != nil {
		a.logger.Debug("card ids from catalog", "path", file.Path())
		return sandbox.NewLibrary(file.Set(CardSet), specs), nil
	}
	return sandbox.DefaultLibrary(), nil
}

// follow drains the change notifications of the card source until ctx is
// done. Sources refresh themselves; this only logs.
func (s *session) follow(ctx context.Context, a *app) {
	if s.watch == nil {
		return
	}
	ch, err := s.watch.Watch(ctx)
	if err != nil {
		a.logger.Warn("card source cannot be watched", "err", err)
		return
	}
	go func() {
		for range ch {
			a.logger.Info("card source changed")
		}
	}()
}
