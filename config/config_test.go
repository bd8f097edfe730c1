package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panyam/stanpyro/codegen"
	"github.com/panyam/stanpyro/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, codegen.DefaultOptions(), cfg.Options)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "stanpyro.toml", `
log_level = "debug"

[codegen]
indent_unit = "  "
emit_line_markers = true

[codegen.helpers]
assign = "rebind"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, core.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, "  ", cfg.Options.IndentUnit)
	assert.True(t, cfg.Options.EmitLineMarkers)
	assert.Equal(t, "rebind", cfg.Options.Helpers.Assign)
	assert.Equal(t, "_pyro_sample", cfg.Options.Helpers.Sample)
	assert.Equal(t, "log_density", cfg.Options.LogDensityVar)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(writeFile(t, "bad.toml", "[codegen]\nindent = 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config keys")

	_, err = Load(writeFile(t, "bad.toml", "log_level = \"loud\"\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "[codegen\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "stanpyro.toml", "[codegen]\nindent_unit = \"  \"\n")
	t.Setenv(IndentEnvVar, "tab")
	t.Setenv(LineMarkersEnvVar, "true")
	t.Setenv(core.LogLevelEnvVar, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "\t", cfg.Options.IndentUnit)
	assert.True(t, cfg.Options.EmitLineMarkers)
	assert.Equal(t, core.LogLevelWarn, cfg.LogLevel)

	t.Setenv(IndentEnvVar, "3")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "   ", cfg.Options.IndentUnit)

	t.Setenv(IndentEnvVar, "-1")
	_, err = Load("")
	assert.ErrorContains(t, err, IndentEnvVar)
}

func TestLoadEnvFiles(t *testing.T) {
	path := writeFile(t, ".env", "STANPYRO_TEST_ONLY_VAR=hello\n")
	t.Setenv("STANPYRO_TEST_ONLY_VAR", "")
	os.Unsetenv("STANPYRO_TEST_ONLY_VAR")

	require.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env"), path))
	assert.Equal(t, "hello", os.Getenv("STANPYRO_TEST_ONLY_VAR"))
}
