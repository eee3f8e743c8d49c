package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole/pkg/adapters/catalog"
	"github.com/aretw0/devconsole/pkg/ports/tests"
)

const yamlCatalog = `
cards:
  - Strike_R
  - id: Bash
    damage: 8
    cost: 2
  - id: Perfected Strike
relics: [Anchor, Vajra]
`

const tomlCatalog = `
relics = ["Anchor", "Vajra"]

[[cards]]
id = "Strike_R"

[[cards]]
id = "Bash"
damage = 8
`

const jsonCatalog = `{"cards": ["Strike_R", {"id": "Bash", "damage": 8}], "relics": []}`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFile_Contract(t *testing.T) {
	f, err := catalog.Open(write(t, t.TempDir(), "ids.yaml", yamlCatalog))
	require.NoError(t, err)
	tests.IDSourceContractTest(t, f.Set("cards"), []string{"Strike_R", "Bash", "Perfected Strike"})
}

func TestFile_Formats(t *testing.T) {
	for name, content := range map[string]string{
		"ids.yaml": yamlCatalog,
		"ids.yml":  yamlCatalog,
		"ids.toml": tomlCatalog,
		"ids.json": jsonCatalog,
	} {
		t.Run(name, func(t *testing.T) {
			f, err := catalog.Open(write(t, t.TempDir(), name, content))
			require.NoError(t, err)

			assert.Equal(t, []string{"cards", "relics"}, f.Sets())
			assert.Equal(t, []string{"Strike_R", "Bash"}, f.Set("cards").IDs()[:2])

			bash, ok := f.Entry("cards", "Bash")
			require.True(t, ok)
			assert.EqualValues(t, 8, bash.Attributes["damage"])
			assert.NotContains(t, bash.Attributes, "id")
		})
	}
}

func TestFile_UnknownSet(t *testing.T) {
	f, err := catalog.Open(write(t, t.TempDir(), "ids.yaml", yamlCatalog))
	require.NoError(t, err)
	assert.Empty(t, f.Set("potions").IDs())
	assert.Empty(t, f.Entries("potions"))
	_, ok := f.Entry("cards", "Nope")
	assert.False(t, ok)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := catalog.Open(write(t, dir, "ids.ini", "cards=a"))
	assert.ErrorIs(t, err, catalog.ErrUnsupportedFormat)

	_, err = catalog.Open(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = catalog.Open(write(t, dir, "scalar.yaml", "cards: Strike_R\n"))
	assert.ErrorContains(t, err, `set "cards" must be a list`)

	_, err = catalog.Open(write(t, dir, "noid.yaml", "cards:\n  - damage: 3\n"))
	assert.ErrorContains(t, err, "missing id")
}

func TestFile_ReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "ids.yaml", yamlCatalog)
	f, err := catalog.Open(path)
	require.NoError(t, err)

	write(t, dir, "ids.yaml", "cards: [\n")
	assert.Error(t, f.Reload())
	assert.Len(t, f.Set("cards").IDs(), 3)
}

func TestFile_Watch(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "ids.yaml", yamlCatalog)
	f, err := catalog.Open(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := f.Watch(ctx)
	require.NoError(t, err)

	// Replace the file the way editors do.
	tmp := write(t, dir, "ids.yaml.tmp", "cards: [Anger]\n")
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}
	assert.Equal(t, []string{"Anger"}, f.Set("cards").IDs())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
