package summary_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/summary"
)

func TestDefaultRules(t *testing.T) {
	rules := summary.DefaultRules()

	assert.Equal(t, 10, rules.MaxFiles)
	assert.Equal(t, 3, rules.MaxEntrypointDepth)
	assert.Equal(t, 300_000, rules.MaxContextChars)
	assert.Contains(t, rules.KeyFiles, "README.md")
	assert.Contains(t, rules.EntrypointNames, "main.go")
	assert.Contains(t, rules.Exclude, "node_modules/")
}

func TestLoadRules_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxFiles: 3\nsourceExtensions: [\".zig\"]\n"), 0o644))

	rules, err := summary.LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 3, rules.MaxFiles)
	assert.Equal(t, []string{".zig"}, rules.SourceExtensions)
	// Untouched fields keep their defaults.
	assert.Equal(t, summary.DefaultRules().KeyFiles, rules.KeyFiles)
	assert.Equal(t, summary.DefaultRules().Exclude, rules.Exclude)
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := summary.LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRules_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxFiles: [not a number"), 0o644))

	_, err := summary.LoadRules(path)
	require.Error(t, err)
}
