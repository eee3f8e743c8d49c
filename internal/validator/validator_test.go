package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/internal/sandbox"
	"github.com/aretw0/devconsole/internal/validator"
	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

type tree map[string]domain.Node

func (t tree) Commands() []string {
	var out []string
	for _, w := range []string{"broken", "fine"} {
		if _, ok := t[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

func (t tree) Root(word string) (domain.Node, bool) {
	n, ok := t[word]
	return n, ok
}

func TestValidateTree_Sandbox(t *testing.T) {
	console := devconsole.New()
	host := sandbox.NewHost(sandbox.DefaultLibrary(), console.Logf)
	require.NoError(t, console.RegisterAll(host.Commands()))

	assert.NoError(t, validator.ValidateTree(console))
}

func TestValidateTree_Errors(t *testing.T) {
	empty := command.NewIntermediate(command.IntermediateConfig{})

	broken := command.NewIntermediate(command.IntermediateConfig{
		Possible: func() []string { return []string{"empty", "ghost"} },
	})
	broken.PutSubCommand("empty", empty)
	broken.PutSubCommand("nil", nil)

	fine := command.NewIntermediate(command.IntermediateConfig{})
	fine.PutSubCommand("go", command.Action(func(string, []string) {}))

	err := validator.ValidateTree(tree{"broken": broken, "fine": fine})
	require.Error(t, err)
	assert.Equal(t, `found 3 errors:
- 'broken nil' maps to no command
- 'broken' suggests 'ghost' which does not resolve
- 'broken empty' cannot resolve any token`, err.Error())
}

func TestValidateTree_CaseFoldedCandidates(t *testing.T) {
	root := command.NewIntermediate(command.IntermediateConfig{
		Possible: func() []string { return []string{"Go"} },
	})
	root.PutSubCommand("go", command.Action(func(string, []string) {}))

	assert.NoError(t, validator.ValidateTree(tree{"fine": root}))
}
