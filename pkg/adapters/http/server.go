package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/ports"
	"github.com/aretw0/devconsole/pkg/runner"
)

// Console is the part of devconsole.Console the server needs.
type Console interface {
	Capture(ctx context.Context, line string) (*domain.Result, string, error)
	Complete(ctx context.Context, line string) domain.Suggestions
	Commands() []string
}

// LineRequest is the body of POST /execute and POST /complete.
type LineRequest struct {
	Line string `json:"line"`
}

// CommandsResponse is the body of GET /commands.
type CommandsResponse struct {
	Commands []string `json:"commands"`
}

// Server exposes a console over HTTP.
type Server struct {
	Console Console
	Streams *StreamManager

	logger  *slog.Logger
	version string
	metrics http.Handler
	watch   ports.Watchable
	limit   int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithWatch relays changes of an id source to /events as reload events.
func WithWatch(w ports.Watchable) Option {
	return func(s *Server) {
		s.watch = w
	}
}

// WithMaxInputSize bounds the accepted line size. Zero uses the runner
// default.
func WithMaxInputSize(limit int) Option {
	return func(s *Server) {
		s.limit = limit
	}
}

// NewHandler creates the HTTP handler for a console.
func NewHandler(console Console, opts ...Option) http.Handler {
	s := &Server{
		Console: console,
		Streams: NewStreamManager(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/execute", s.Execute)
	r.Post("/complete", s.Complete)
	r.Get("/commands", s.GetCommands)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// readLine decodes and sanitizes the request line. It writes the error
// response itself.
func (s *Server) readLine(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	var body LineRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn(op+": invalid request body", "err", err)
		return "", false
	}

	var (
		clean string
		err   error
	)
	if s.limit > 0 {
		clean, err = runner.SanitizeInputWithLimit(body.Line, s.limit)
	} else {
		clean, err = runner.SanitizeInput(body.Line)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn(op+": input rejected", "err", err, "size", len(body.Line))
		return "", false
	}
	return clean, true
}

// Execute handles POST /execute. Console errors are reported in the body
// with status 422.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	line, ok := s.readLine(w, r, "Execute")
	if !ok {
		return
	}

	res, output, err := s.Console.Capture(r.Context(), line)
	report := runner.NewJSONReport(runner.Report{Line: line, Result: res, Output: output, Err: err})

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
		s.logger.Debug("Execute: line failed", "line", line, "err", err)
	}
	if payload, mErr := json.Marshal(report); mErr == nil {
		s.Streams.Broadcast(string(payload))
	}
	writeJSON(w, status, report, s.logger)
}

// Complete handles POST /complete.
func (s *Server) Complete(w http.ResponseWriter, r *http.Request) {
	line, ok := s.readLine(w, r, "Complete")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Console.Complete(r.Context(), line), s.logger)
}

// GetCommands handles GET /commands.
func (s *Server) GetCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CommandsResponse{Commands: s.Console.Commands()}, s.logger)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "devconsole-http",
		"version": strings.TrimSpace(s.version),
	}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

// StreamManager fans out line reports to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Subscribe registers a subscriber. The returned func unsubscribes it and
// closes the channel.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every subscriber, dropping it for slow ones.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// SubscribeEvents handles GET /events (SSE). Every executed line is sent
// as a "line" event; id source changes are sent as "reload" events.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var reloads <-chan struct{}
	if s.watch != nil {
		ch, err := s.watch.Watch(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
			return
		}
		reloads = ch
	}

	lines, cancel := s.Streams.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case _, ok := <-reloads:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: ids changed\n\n")
			flusher.Flush()
		case msg, ok := <-lines:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: line\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
