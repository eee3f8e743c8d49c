package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/runner"
)

func newConsole(t *testing.T, debug *bool) *devconsole.Console {
	t.Helper()
	console := devconsole.New()
	node := command.NewIntermediate(command.IntermediateConfig{
		ErrorMessage: domain.Lines("could not parse previous command", "options are:", "* true", "* false"),
	})
	set := func(v bool) *command.Terminal {
		return command.Action(func(string, []string) {
			*debug = v
			console.Logf("Setting debug mode to: %t", v)
		})
	}
	node.PutSubCommand("true", set(true))
	node.PutSubCommand("false", set(false))
	require.NoError(t, console.Register("debug", node))
	return console
}

func run(t *testing.T, r *runner.Runner, console runner.Evaluator) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background(), console) }()
	require.NoError(t, <-done)
}

func TestRunner_TextFlow(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	in := strings.NewReader("debug true\n\ndebug maybe\ndebug\nexit\ndebug false\n")
	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(in, out)))

	run(t, r, console)

	assert.True(t, debug, "lines after exit must not run")
	text := out.String()
	assert.Contains(t, text, "Setting debug mode to: true")
	assert.Contains(t, text, "options are:\n* true\n* false")
	assert.Contains(t, text, "no match found: false true")
	assert.NotContains(t, text, "Setting debug mode to: false")
}

func TestRunner_ReleasesReaderAfterExit(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	in := strings.NewReader("debug true\nquit\ndebug false\ndebug true\ndebug false\n")
	handler := runner.NewTextHandler(in, &bytes.Buffer{}, runner.WithTextHandlerPrompt(""))
	run(t, runner.NewRunner(runner.WithInputHandler(handler)), console)

	// The background reader only closes its channel on the way out, so EOF
	// here means it is no longer parked on the unread lines.
	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := handler.Input(ctx)
		return errors.Is(err, io.EOF)
	}, time.Second, 5*time.Millisecond)
	assert.True(t, debug)
}

func TestRunner_StopsAtEOF(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("debug true"), out)))

	run(t, r, console)
	assert.True(t, debug, "a last line without newline still runs")
}

func TestRunner_DidYouMean(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(
		runner.NewTextHandler(strings.NewReader("debgu true\n"), out, runner.WithTextHandlerPrompt("")),
	))
	run(t, r, console)

	assert.Contains(t, out.String(), "could not find command debgu")
	assert.Contains(t, out.String(), "did you mean debug?")
}

func TestRunner_RejectsOversizedInput(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	out := &bytes.Buffer{}
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("debug true\n"), out)),
		runner.WithMaxInputSize(4),
	)
	run(t, r, console)

	assert.False(t, debug)
	assert.Contains(t, out.String(), "[System] Error: input exceeds maximum allowed size")
}

func TestRunner_Interceptor(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	out := &bytes.Buffer{}
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("debug true\n"), out)),
		runner.WithInterceptor(runner.AllowCommands("help")),
	)
	run(t, r, console)

	assert.False(t, debug)
	assert.Contains(t, out.String(), "command debug is not allowed here")
}

func TestRunner_MarkdownRenderer(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	out := &bytes.Buffer{}
	handler := runner.NewTextHandler(strings.NewReader("help\ndebug true\n"), out,
		runner.WithTextHandlerRenderer(func(s string) (string, error) { return "RENDERED " + s, nil }))
	run(t, runner.NewRunner(runner.WithInputHandler(handler)), console)

	assert.Contains(t, out.String(), "RENDERED # Commands")
	assert.NotContains(t, out.String(), "RENDERED Setting debug")
}

func TestRunner_JSONFlow(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	in := strings.NewReader("\"debug true\"\ndebug maybe\nquit\n")
	out := &bytes.Buffer{}
	run(t, runner.NewRunner(runner.WithInputHandler(runner.NewJSONHandler(in, out))), console)

	dec := json.NewDecoder(out)
	var first, second runner.JSONReport
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, domain.OutcomeExecuted, first.Outcome)
	assert.Equal(t, "Setting debug mode to: true\n", first.Output)
	assert.NotEmpty(t, first.LineID)

	assert.Equal(t, "unresolved", second.ErrorKind)
	assert.Equal(t, 1, second.Position)
	assert.Contains(t, second.Error, "* false")
	assert.False(t, dec.More())
}

func TestRunner_ContextCancelled(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(pr, &bytes.Buffer{})))
	assert.NoError(t, r.Run(ctx, console))
}

func TestTextHandler_Styles(t *testing.T) {
	debug := false
	console := newConsole(t, &debug)

	out := &bytes.Buffer{}
	handler := runner.NewTextHandler(strings.NewReader("debgu true\n"), out,
		runner.WithTextHandlerPrompt(""),
		runner.WithTextHandlerStyles(
			func(s string) string { return "<err>" + s + "</err>" },
			func(s string) string { return "<hint>" + s + "</hint>" },
		))
	run(t, runner.NewRunner(runner.WithInputHandler(handler)), console)

	assert.Contains(t, out.String(), "<err>could not find command debgu")
	assert.Contains(t, out.String(), "<hint>did you mean debug?</hint>")
}
