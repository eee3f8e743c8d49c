package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/devconsole/pkg/command"
)

// ErrLineDeclined is returned when the user declines a confirmation.
var ErrLineDeclined = errors.New("line declined")

// LineInterceptor is a middleware that may block a line before it runs.
// A non-nil error blocks the line and is reported in its place.
type LineInterceptor func(ctx context.Context, tokens []string) error

// MultiInterceptor chains multiple interceptors. The first error wins.
func MultiInterceptor(interceptors ...LineInterceptor) LineInterceptor {
	return func(ctx context.Context, tokens []string) error {
		for _, interceptor := range interceptors {
			if err := interceptor(ctx, tokens); err != nil {
				return err
			}
		}
		return nil
	}
}

// AllowCommands blocks every command word not listed.
func AllowCommands(words ...string) LineInterceptor {
	allowed := make(map[string]bool, len(words))
	for _, w := range words {
		allowed[command.FoldCase(w)] = true
	}
	return func(_ context.Context, tokens []string) error {
		if len(tokens) == 0 || allowed[command.FoldCase(tokens[0])] {
			return nil
		}
		return fmt.Errorf("command %s is not allowed here", tokens[0])
	}
}

// ConfirmationMiddleware asks the user through handler before running one
// of the listed commands. Only "y" and "yes" confirm.
func ConfirmationMiddleware(handler IOHandler, words ...string) LineInterceptor {
	guarded := make(map[string]bool, len(words))
	for _, w := range words {
		guarded[command.FoldCase(w)] = true
	}
	return func(ctx context.Context, tokens []string) error {
		if len(tokens) == 0 || !guarded[command.FoldCase(tokens[0])] {
			return nil
		}
		line := strings.Join(tokens, " ")
		if err := handler.SystemOutput(ctx, fmt.Sprintf("Run '%s'? [y/N]", line)); err != nil {
			return err
		}
		answer, err := handler.Input(ctx)
		if err != nil {
			return err
		}
		switch command.FoldCase(strings.TrimSpace(answer)) {
		case "y", "yes":
			return nil
		}
		return fmt.Errorf("%w: %s", ErrLineDeclined, line)
	}
}
