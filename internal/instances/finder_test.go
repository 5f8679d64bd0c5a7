package instances

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("{}"), 0o600))
	}
	return dir
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("plain paths pass through", func(t *testing.T) {
		t.Parallel()
		paths, err := Resolve([]string{"a.json", "missing.json"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.json", "missing.json"}, paths)
	})

	t.Run("stdin passes through", func(t *testing.T) {
		t.Parallel()
		paths, err := Resolve([]string{Stdin})
		require.NoError(t, err)
		assert.Equal(t, []string{Stdin}, paths)
	})

	t.Run("doublestar pattern crosses directories", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, "a.json", filepath.Join("nested", "b.json"), "c.txt")

		paths, err := Resolve([]string{filepath.Join(dir, "**", "*.json")})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.json"),
			filepath.Join(dir, "nested", "b.json"),
		}, paths)
	})

	t.Run("pattern matching nothing is an error", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, "a.json")
		_, err := Resolve([]string{filepath.Join(dir, "*.yaml")})

		var noMatch *NoMatchError
		require.ErrorAs(t, err, &noMatch)
	})

	t.Run("malformed pattern is an error", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve([]string{"data/[.json"})

		var badPattern *BadPatternError
		require.ErrorAs(t, err, &badPattern)
	})
}
