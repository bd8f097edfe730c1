package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

const exampleModel = "../../../examples/logreg/model.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, includeDirs, lineMarkers, outputPath = "", nil, false, ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLowerExample(t *testing.T) {
	out, err := run(t, "lower", exampleModel)
	require.NoError(t, err)
	golden.Assert(t, out, "logreg.golden")
}

func TestLowerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.py")
	out, err := run(t, "lower", exampleModel, "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "def model(data, params):")
}

func TestLowerLineMarkers(t *testing.T) {
	out, err := run(t, "lower", "--line-markers", exampleModel)
	require.NoError(t, err)
	assert.Contains(t, out, "# current_statement_begin__ = 14\n    alpha = _pyro_sample(")
}

func TestLowerFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(model, []byte("model:\n  - {kind: sample, lhs: \"2.0\", dist: normal}\n"), 0o644))
	target := filepath.Join(dir, "bad.py")

	_, err := run(t, "lower", model, "-o", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampling constants not supported")
	assert.NoFileExists(t, target)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("model:\n  - {kind: teleport}\n"), 0o644))

	out, err := run(t, "validate", exampleModel)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+exampleModel)

	out, err = run(t, "validate", exampleModel, bad)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL "+bad)
	assert.Contains(t, err.Error(), "1 of 2 file(s) failed validation")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stanpyro dev\n", out)
}
