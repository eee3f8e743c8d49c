package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/pkg/adapters/memory"
	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/observability"
	"github.com/aretw0/devconsole/pkg/runner"
)

func newConsole(t *testing.T, opts ...devconsole.Option) *devconsole.Console {
	t.Helper()
	console := devconsole.New(opts...)

	debug := command.NewIntermediate(command.IntermediateConfig{})
	debug.PutSubCommand("true", command.Action(func(string, []string) { console.Logf("Setting debug mode to: true") }))
	debug.PutSubCommand("false", command.Action(func(string, []string) { console.Logf("Setting debug mode to: false") }))
	require.NoError(t, console.Register("debug", debug))
	return console
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeReport(t *testing.T, w *httptest.ResponseRecorder) runner.JSONReport {
	t.Helper()
	var report runner.JSONReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	return report
}

func TestExecute(t *testing.T) {
	h := NewHandler(newConsole(t))

	w := post(t, h, "/execute", `{"line": "debug TRUE"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	report := decodeReport(t, w)
	assert.Equal(t, "executed", string(report.Outcome))
	assert.Equal(t, "Setting debug mode to: true\n", report.Output)
	assert.NotEmpty(t, report.LineID)
	assert.Empty(t, report.Error)
}

func TestExecute_Incomplete(t *testing.T) {
	h := NewHandler(newConsole(t))

	w := post(t, h, "/execute", `{"line": "debug"}`)
	require.Equal(t, http.StatusOK, w.Code)

	report := decodeReport(t, w)
	assert.Equal(t, "incomplete", string(report.Outcome))
	require.NotNil(t, report.Suggestions)
	assert.Equal(t, []string{"false", "true"}, report.Suggestions.Candidates)
}

func TestExecute_ConsoleErrors(t *testing.T) {
	h := NewHandler(newConsole(t))

	w := post(t, h, "/execute", `{"line": "debug ture"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	report := decodeReport(t, w)
	assert.Equal(t, "unresolved", report.ErrorKind)
	assert.Equal(t, "could not parse previous command", report.Error)
	assert.Equal(t, 1, report.Position)
	assert.Equal(t, "true", report.DidYouMean)

	w = post(t, h, "/execute", `{"line": "dbug true"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	report = decodeReport(t, w)
	assert.Equal(t, "debug", report.DidYouMean)
	assert.Contains(t, report.Error, "could not find command dbug")
}

func TestExecute_BadRequests(t *testing.T) {
	h := NewHandler(newConsole(t), WithMaxInputSize(10))

	w := post(t, h, "/execute", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, "/execute", `{"line": "debug true true true"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid input")
}

func TestComplete(t *testing.T) {
	h := NewHandler(newConsole(t))

	w := post(t, h, "/complete", `{"line": "debug t"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Candidates []string `json:"candidates"`
		Message    string   `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, []string{"true"}, got.Candidates)
	assert.Equal(t, "no match found", got.Message)
}

func TestGetCommands(t *testing.T) {
	h := NewHandler(newConsole(t))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/commands", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got CommandsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, []string{"debug", "help"}, got.Commands)
}

func TestHealthInfoAndCORS(t *testing.T) {
	h := NewHandler(newConsole(t), WithVersion("1.2.3\n"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.JSONEq(t, `{"app":"devconsole-http","version":"1.2.3"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/execute", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	console := newConsole(t, devconsole.WithLifecycleHooks(m.Hooks()))
	h := NewHandler(console, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	post(t, h, "/execute", `{"line": "debug true"}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `devconsole_lines_total{command="debug",outcome="executed"} 1`)

	without := NewHandler(console)
	w = httptest.NewRecorder()
	without.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type fakeWatch struct{ ch chan struct{} }

func (f fakeWatch) Watch(context.Context) (<-chan struct{}, error) { return f.ch, nil }

func TestSubscribeEvents_Reload(t *testing.T) {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	close(ch)
	h := NewHandler(newConsole(t), WithWatch(fakeWatch{ch: ch}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "event: ping")
	assert.Contains(t, w.Body.String(), "event: reload")
}

func TestSubscribeEvents_Lines(t *testing.T) {
	srv := httptest.NewServer(NewHandler(newConsole(t)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readUntil := func(prefix string) string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, prefix) {
				return line
			}
		}
	}
	readUntil("data: connected")

	execResp, err := http.Post(srv.URL+"/execute", "application/json", strings.NewReader(`{"line": "debug false"}`))
	require.NoError(t, err)
	execResp.Body.Close()

	readUntil("event: line")
	data := readUntil("data: ")
	assert.Contains(t, data, `"line":"debug false"`)
	assert.Contains(t, data, `"outcome":"executed"`)
}

func TestSubscribeEvents_ReloadFromSet(t *testing.T) {
	ids := memory.NewSet("Bash")
	srv := httptest.NewServer(NewHandler(newConsole(t), WithWatch(ids)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readUntil := func(prefix string) {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, prefix) {
				return
			}
		}
	}
	readUntil("data: connected")

	ids.Add("Anger")
	readUntil("event: reload")
}
