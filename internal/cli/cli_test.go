package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gatgui/pyexpr/internal/scenefile"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		want     *Config
		wantExit bool
		wantCode int
	}{
		{
			name: "defaults",
			args: []string{"scene.hcl"},
			want: &Config{ScenePath: "scene.hcl", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "frame range",
			args: []string{"-frames", "1:24", "-log-format", "JSON", "-log-level", "debug", "scene.hcl"},
			want: &Config{
				ScenePath:  "scene.hcl",
				LogFormat:  "json",
				LogLevel:   "debug",
				HasFrames:  true,
				FrameStart: 1,
				FrameEnd:   24,
			},
		},
		{
			name: "single frame",
			args: []string{"-frames", "12", "scene.hcl"},
			want: &Config{
				ScenePath:  "scene.hcl",
				LogFormat:  "text",
				LogLevel:   "warn",
				HasFrames:  true,
				FrameStart: 12,
				FrameEnd:   12,
			},
		},
		{name: "help", args: []string{"-h"}, wantExit: true},
		{name: "no scene", args: nil, wantCode: 2},
		{name: "two scenes", args: []string{"a.hcl", "b.hcl"}, wantCode: 2},
		{name: "unknown flag", args: []string{"-workers", "3", "scene.hcl"}, wantCode: 2},
		{name: "bad log format", args: []string{"-log-format", "xml", "scene.hcl"}, wantCode: 2},
		{name: "bad log level", args: []string{"-log-level", "trace", "scene.hcl"}, wantCode: 2},
		{name: "bad frames", args: []string{"-frames", "a:b", "scene.hcl"}, wantCode: 2},
		{name: "reversed frames", args: []string{"-frames", "10:1", "scene.hcl"}, wantCode: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg, exit, err := Parse(tt.args, &out)

			if tt.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tt.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExit, exit)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestNewLogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewLogHandler(&Config{LogFormat: "json", LogLevel: "info"}, &buf)
	logger := slog.New(h)
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	h = NewLogHandler(&Config{LogFormat: "text", LogLevel: "warn"}, &buf)
	slog.New(h).Info("hidden")
	slog.New(h).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

const runScene = `
pyexpr "sum" {
  expression  = "a + b"
  output_type = "int"

  attribute "a" {
    type  = "long"
    value = 3
  }
  attribute "b" {
    type  = "long"
    value = 4
  }
}

pyexpr "names" {
  expression           = "['%s%d' % (p, i) for i in range(n)]"
  output_type          = "strings"
  eval_on_time_changed = true

  attribute "p" {
    type  = "string"
    value = "x"
  }
  attribute "n" {
    type  = "long"
    value = 2
  }
}

pyexpr "bad" {
  expression  = "1 / 0"
  output_type = "double"
}
`

func rows(t *testing.T, out string) [][]string {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, []string{"FRAME", "NODE", "TYPE", "VALUE", "SUCCEEDED", "ERROR"}, strings.Fields(lines[0]))

	var out2 [][]string
	for _, line := range lines[1:] {
		out2 = append(out2, strings.Fields(line))
	}
	return out2
}

func TestRun(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/scene.hcl", []byte(runScene), 0o644))

	t.Run("current time", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg := &Config{ScenePath: "/scene.hcl", LogFormat: "text", LogLevel: "error"}
		require.NoError(t, Run(t.Context(), cfg, fs, &out, slog.DiscardHandler))

		got := rows(t, out.String())
		require.Len(t, got, 3)
		assert.Equal(t, []string{"0", "sum", "int", "7", "true", "-"}, got[0])
		assert.Equal(t, []string{"0", "names", "string[]", `["x0"`, `"x1"]`, "true", "-"}, got[1])

		bad := got[2]
		require.Greater(t, len(bad), 5)
		assert.Equal(t, []string{"0", "bad", "double", "0", "false"}, bad[:5])
		assert.NotEqual(t, "-", bad[5])
	})

	t.Run("frame range", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg := &Config{
			ScenePath:  "/scene.hcl",
			LogFormat:  "text",
			LogLevel:   "error",
			HasFrames:  true,
			FrameStart: 1,
			FrameEnd:   3,
		}
		require.NoError(t, Run(t.Context(), cfg, fs, &out, slog.DiscardHandler))

		got := rows(t, out.String())
		require.Len(t, got, 9)
		for i, frame := range []string{"1", "2", "3"} {
			assert.Equal(t, frame, got[i*3][0])
			assert.Equal(t, "sum", got[i*3][1])
			assert.Equal(t, "7", got[i*3][3])
			assert.Equal(t, "names", got[i*3+1][1])
		}
	})

	t.Run("missing scene", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{ScenePath: "/missing.hcl"}
		require.Error(t, Run(t.Context(), cfg, fs, &bytes.Buffer{}, slog.DiscardHandler))
	})

	t.Run("invalid scene", func(t *testing.T) {
		t.Parallel()
		invalid := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(invalid, "/scene.hcl", []byte(`pyexpr "a" {`), 0o644))
		cfg := &Config{ScenePath: "/scene.hcl"}
		err := Run(t.Context(), cfg, invalid, &bytes.Buffer{}, slog.DiscardHandler)
		require.ErrorIs(t, err, scenefile.ErrInvalidScene)
	})
}
