package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole/pkg/adapters/memory"
	contract "github.com/aretw0/devconsole/pkg/ports/tests"
)

func TestSet_Contract(t *testing.T) {
	contract.IDSourceContractTest(t, memory.NewSet("Strike_R", "Bash"), []string{"Strike_R", "Bash"})
}

func TestSet_AddRemove(t *testing.T) {
	s := memory.NewSet("Bash")
	s.Add("Anger", "Bash")
	assert.Equal(t, []string{"Anger", "Bash"}, s.IDs())

	s.Remove("Bash", "Nope")
	assert.Equal(t, []string{"Anger"}, s.IDs())
}

func TestSet_Watch(t *testing.T) {
	s := memory.NewSet()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	s.Add("Anger")
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no change signaled")
	}

	// No-op changes are not signaled.
	s.Add("Anger")
	s.Remove("Nope")
	select {
	case <-ch:
		t.Fatal("unexpected signal")
	default:
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
