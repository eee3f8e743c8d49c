package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/registry"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := registry.NewRegistry()
	debug := command.NewIntermediate(command.IntermediateConfig{})
	hand := command.NewIntermediate(command.IntermediateConfig{})

	require.NoError(t, reg.Register("hand", hand))
	require.NoError(t, reg.Register("debug", debug))

	got, ok := reg.Lookup("debug")
	require.True(t, ok)
	assert.Same(t, debug, got)

	_, ok = reg.Lookup("unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"debug", "hand"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Overwrite(t *testing.T) {
	reg := registry.NewRegistry()
	first := command.NewIntermediate(command.IntermediateConfig{})
	second := command.NewIntermediate(command.IntermediateConfig{})

	require.NoError(t, reg.Register("hand", first))
	require.NoError(t, reg.Register("hand", second))

	got, _ := reg.Lookup("hand")
	assert.Same(t, second, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Invalid(t *testing.T) {
	reg := registry.NewRegistry()

	assert.Error(t, reg.Register("", command.NewIntermediate(command.IntermediateConfig{})))
	assert.Error(t, reg.Register("hand", nil))
	assert.Zero(t, reg.Len())
}

func TestRegistry_Remove(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register("hand", command.NewIntermediate(command.IntermediateConfig{})))

	assert.True(t, reg.Remove("hand"))
	assert.False(t, reg.Remove("hand"))
	assert.Empty(t, reg.Names())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := registry.NewRegistry()
	node := command.NewIntermediate(command.IntermediateConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = reg.Register("hand", node)
		}()
		go func() {
			defer wg.Done()
			reg.Lookup("hand")
			reg.Names()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, reg.Len())
}
