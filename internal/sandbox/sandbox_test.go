package sandbox_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/internal/sandbox"
	"github.com/aretw0/devconsole/pkg/adapters/memory"
	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/ports"
)

func setup(t *testing.T) (*devconsole.Console, *sandbox.Host, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	console := devconsole.New(devconsole.WithOutput(out))
	host := sandbox.NewHost(sandbox.DefaultLibrary(), console.Logf)
	require.NoError(t, console.RegisterAll(host.Commands()))
	return console, host, out
}

func exec(t *testing.T, console *devconsole.Console, line string) {
	t.Helper()
	res, err := console.Execute(context.Background(), line)
	require.NoError(t, err, line)
	require.True(t, res.Executed(), line)
}

func ids(cards []sandbox.Card) []string {
	var out []string
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestDebug(t *testing.T) {
	console, host, out := setup(t)

	exec(t, console, "debug true")
	assert.True(t, host.Settings.Debug)
	assert.Equal(t, "Setting debug mode to: true\n", out.String())

	_, err := console.Execute(context.Background(), "debug maybe")
	require.Error(t, err)
	assert.Equal(t, sandbox.DebugError, err.Error())
	assert.True(t, host.Settings.Debug)
}

func TestHand_RequiresPlayer(t *testing.T) {
	console, _, _ := setup(t)

	tests := map[string]string{
		"hand add Strike_R":   "cannot add cards when player doesn't exist",
		"hand remove all":     "cannot remove cards when player doesn't exist",
		"hand d all":          "cannot discard cards when player doesn't exist",
		"hand set cost all 0": "cannot set card attributes when player doesn't exist",
		"hand show":           "cannot show cards when player doesn't exist",
	}
	for line, msg := range tests {
		_, err := console.Execute(context.Background(), line)
		require.Error(t, err, line)
		assert.True(t, domain.IsPrecondition(err), line)
		assert.Equal(t, msg, err.Error())
	}
}

func TestHand_Add(t *testing.T) {
	console, host, out := setup(t)
	exec(t, console, "player spawn")

	exec(t, console, "hand add Strike_R")
	exec(t, console, "hand a strike_r 2")
	exec(t, console, "hand add perfected strike 2 1")
	exec(t, console, "hand add Perfected_Strike")

	assert.Equal(t, []string{"Strike_R", "Strike_R", "Strike_R", "Perfected Strike", "Perfected Strike", "Perfected Strike"}, ids(host.Player.Hand))
	assert.Equal(t, 0, host.Player.Hand[0].Upgrades)
	assert.Equal(t, 1, host.Player.Hand[3].Upgrades)
	assert.Equal(t, 0, host.Player.Hand[5].Upgrades)
	assert.Contains(t, out.String(), "adding 1 copy of Strike_R with 0 upgrade(s)")
	assert.Contains(t, out.String(), "adding 2 copies of Perfected Strike with 1 upgrade(s)")

	_, err := console.Execute(context.Background(), "hand add Nope")
	assert.EqualError(t, err, "could not find card Nope")
	assert.Equal(t, "precondition", domain.ErrorKind(err))
}

func TestHand_RemoveAndDiscard(t *testing.T) {
	console, host, _ := setup(t)
	exec(t, console, "player spawn")
	exec(t, console, "hand add Bash 3")
	exec(t, console, "hand add Defend_R")

	exec(t, console, "hand remove bash")
	assert.Equal(t, []string{"Bash"}, ids(host.Player.Exhaust))
	assert.Len(t, host.Player.Hand, 3)

	exec(t, console, "hand r Ghostly_Armor")
	assert.Len(t, host.Player.Hand, 3, "cards not in hand are ignored")

	exec(t, console, "hand discard all")
	assert.Empty(t, host.Player.Hand)
	assert.Equal(t, []string{"Bash", "Bash", "Defend_R"}, ids(host.Player.Discard))
}

func TestHand_Set(t *testing.T) {
	console, host, _ := setup(t)
	exec(t, console, "player spawn")
	exec(t, console, "hand add Strike_R 2")
	exec(t, console, "hand add Perfected Strike")

	exec(t, console, "hand set damage Strike_R 20")
	assert.Equal(t, 20, host.Player.Hand[0].Damage)
	assert.True(t, host.Player.Hand[0].Modified)
	assert.Equal(t, 6, host.Player.Hand[1].Damage, "only the first match changes")

	exec(t, console, "hand s d perfected strike 30")
	assert.Equal(t, 30, host.Player.Hand[2].Damage)

	exec(t, console, "hand set cost all 0")
	for _, c := range host.Player.Hand {
		assert.Equal(t, 0, c.Cost)
	}

	exec(t, console, "hand set block all 7")
	exec(t, console, "hand set magic Strike_R 4")
	assert.Equal(t, 7, host.Player.Hand[1].Block)
	assert.Equal(t, 4, host.Player.Hand[0].Magic)

	_, err := console.Execute(context.Background(), "hand set damage Strike_R lots")
	assert.EqualError(t, err, "lots is not a valid number")
	assert.True(t, domain.IsPrecondition(err))

	_, err = console.Execute(context.Background(), "hand set speed Strike_R 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "* set cost [id] [amount]")
}

func TestHand_Show(t *testing.T) {
	console, _, out := setup(t)
	exec(t, console, "player spawn")

	exec(t, console, "hand show")
	assert.Contains(t, out.String(), "hand is empty")

	exec(t, console, "hand add Bash")
	exec(t, console, "hand show")
	assert.Contains(t, out.String(), "0: Bash (cost 2, damage 8, block 0, magic 2, +0)")
}

func TestHand_Autocomplete(t *testing.T) {
	console, _, _ := setup(t)
	ctx := context.Background()

	assert.Equal(t, []string{"add", "discard", "remove", "set", "show"}, console.Complete(ctx, "hand ").Candidates)
	assert.Equal(t, []string{"block", "cost", "damage", "magic"}, console.Complete(ctx, "hand set ").Candidates)
	assert.Equal(t, []string{"Perfected_Strike"}, console.Complete(ctx, "hand add per").Candidates)
	assert.Contains(t, console.Complete(ctx, "hand remove ").Candidates, "all")
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, console.Complete(ctx, "hand add Bash ").Candidates)

	s := console.Complete(ctx, "hand set cost Bash ")
	assert.Equal(t, "number", s.Message)
}

func TestPlayer(t *testing.T) {
	console, host, _ := setup(t)

	exec(t, console, "player spawn")
	require.NotNil(t, host.Player)

	_, err := console.Execute(context.Background(), "player spawn")
	assert.True(t, domain.IsPrecondition(err))

	exec(t, console, "player kill")
	assert.Nil(t, host.Player)
}

func TestLibrary(t *testing.T) {
	lib := sandbox.NewLibrary(ports.StaticIDs{"Anger", "anger_plus"}, nil)

	c, ok := lib.Card("ANGER")
	require.True(t, ok)
	assert.Equal(t, sandbox.Card{ID: "Anger", Cost: 1}, c)

	_, ok = lib.Card("Rage")
	assert.False(t, ok)

	empty := sandbox.NewLibrary(nil, nil)
	assert.Empty(t, empty.IDs())
}

func TestAttributeSpecs(t *testing.T) {
	attrs := map[string]map[string]any{
		"Bash":  {"damage": 8, "magic": int64(2), "cost": "2", "rarity": "basic"},
		"Anger": {},
	}
	specs := sandbox.AttributeSpecs(func(id string) (map[string]any, bool) {
		a, ok := attrs[id]
		return a, ok
	})
	lib := sandbox.NewLibrary(ports.StaticIDs{"Bash", "Anger", "Rage"}, specs)

	bash, ok := lib.Card("bash")
	require.True(t, ok)
	assert.Equal(t, sandbox.Card{ID: "Bash", Damage: 8, Magic: 2, Cost: 2}, bash)

	anger, _ := lib.Card("Anger")
	assert.Equal(t, 1, anger.Cost)

	rage, ok := lib.Card("Rage")
	require.True(t, ok, "ids without stats still resolve")
	assert.Equal(t, sandbox.Card{ID: "Rage", Cost: 1}, rage)
}

func TestLibrary_LiveIDs(t *testing.T) {
	ids := memory.NewSet("Anger")
	console := devconsole.New()
	host := sandbox.NewHost(sandbox.NewLibrary(ids, nil), console.Logf)
	require.NoError(t, console.RegisterAll(host.Commands()))
	ctx := context.Background()

	assert.Equal(t, []string{"Anger"}, console.Complete(ctx, "hand add ").Candidates)

	ids.Add("Wild Strike")
	assert.Equal(t, []string{"Anger", "Wild_Strike"}, console.Complete(ctx, "hand add ").Candidates)

	_, ok := host.Library().Card("Wild Strike")
	assert.True(t, ok)
}
