package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gatgui/pyexpr/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
pyexpr "answer" {
  expression  = "6 * 7"
  output_type = "int"
}
`), 0o644))

	t.Run("evaluates scene", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, run(t.Context(), &stdout, &stderr, []string{"-frames", "1:2", path}))
		assert.Contains(t, stdout.String(), "answer")
		assert.Contains(t, stdout.String(), "42")
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, run(t.Context(), &stdout, &stderr, []string{"-h"}))
		assert.Contains(t, stderr.String(), "SCENE_FILE")
	})

	t.Run("usage error", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(t.Context(), &stdout, &stderr, nil)
		var exitErr *cli.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
