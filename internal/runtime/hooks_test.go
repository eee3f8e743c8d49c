package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole/internal/runtime"
	"github.com/aretw0/devconsole/pkg/domain"
)

type hookRecorder struct {
	mock.Mock
}

func (m *hookRecorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeRun: func(_ context.Context, e *domain.StepEvent) {
			m.MethodCalled("NodeRun", e.Position, e.Token, e.NodeKind)
		},
		OnLineEnd: func(_ context.Context, e *domain.LineEvent) {
			m.MethodCalled("LineEnd", e.Command, e.Outcome, e.Err == nil)
		},
	}
}

func TestExecute_HookSequence(t *testing.T) {
	m := &hookRecorder{}
	m.On("NodeRun", 1, "true", domain.KindIntermediate).Once()
	m.On("NodeRun", 1, "true", domain.KindTerminal).Once()
	m.On("LineEnd", "debug", domain.OutcomeExecuted, true).Once()
	m.On("LineEnd", "debug", domain.Outcome(""), false).Once()

	exec := runtime.NewExecutor(runtime.WithLifecycleHooks(m.hooks()))
	debug := false

	_, err := exec.Execute(context.Background(), newDebug(&debug), []string{"debug", "TRUE"})
	require.NoError(t, err)
	_, err = exec.Execute(context.Background(), newDebug(&debug), []string{"debug", "maybe"})
	require.Error(t, err)

	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "NodeRun", 2)
}
