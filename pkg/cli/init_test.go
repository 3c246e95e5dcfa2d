package cli

import (
	"path/filepath"
	"testing"

	"github.com/mchmarny/pwcheck/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesResolvedSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pwcheck", config.FileName)

	out, _, err := runApp(t, "", path, "--format", "json", "--hidden", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, c.Format)
	assert.True(t, c.Hidden)
	assert.Equal(t, "info", c.LogLevel)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	_, _, err := runApp(t, "", path, "init")
	require.NoError(t, err)

	_, _, err = runApp(t, "", path, "--format", "yaml", "init")
	assert.ErrorIs(t, err, ErrConfigExists)

	_, _, err = runApp(t, "", path, "--format", "yaml", "init", "--force")
	require.NoError(t, err)

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.FormatYAML, c.Format)
}

func TestInit_UsedByNextRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	_, _, err := runApp(t, "", path, "--format", "json", "init")
	require.NoError(t, err)

	out, _, err := runApp(t, "", path, "check", "Abcdef1!")
	require.NoError(t, err)
	assert.Contains(t, out, `"strength": "Strong"`)
}
