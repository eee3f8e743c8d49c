package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/devconsole/pkg/domain"
)

// LoggingHooks logs every line at info level and every node step at debug
// level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeRun: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "node_run",
				"line_id", e.LineID,
				"position", e.Position,
				"token", e.Token,
				"kind", e.NodeKind.String(),
			)
		},
		OnLineEnd: func(ctx context.Context, e *domain.LineEvent) {
			attrs := []any{
				"line_id", e.LineID,
				"command", e.Command,
				"outcome", Outcome(e),
				"duration", e.Duration,
			}
			if e.Err != nil {
				logger.InfoContext(ctx, "line_failed", append(attrs, "err", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "line_done", attrs...)
		},
	}
}
