package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gatgui/pyexpr/engines/starlark"
	"github.com/gatgui/pyexpr/internal/scene"
	"github.com/gatgui/pyexpr/internal/scenefile"
	"github.com/gatgui/pyexpr/node"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/spf13/afero"
)

// NewLogHandler builds the handler selected by cfg, writing to w.
func NewLogHandler(cfg *Config, w io.Writer) slog.Handler {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Run loads the scene file named by cfg from fs, evaluates every expression
// node for each requested frame and writes one row per node and frame to
// out.
func Run(ctx context.Context, cfg *Config, fs afero.Fs, out io.Writer, handler slog.Handler) error {
	logger := slog.New(handler).WithGroup("cli")

	file, err := scenefile.Load(fs, cfg.ScenePath)
	if err != nil {
		return err
	}

	engine, err := starlark.New(starlark.WithLogHandler(handler))
	if err != nil {
		return err
	}

	s, err := scene.New(engine, scene.WithLogHandler(handler))
	if err != nil {
		return err
	}
	if err := file.Apply(ctx, s); err != nil {
		return err
	}
	logger.Debug("scene loaded", "path", file.Path(), "nodes", len(s.Nodes()))

	frames := []float64{attribute.TimeIn(s.Time(), s.Units().Time)}
	if cfg.HasFrames {
		frames = frames[:0]
		for f := cfg.FrameStart; f <= cfg.FrameEnd; f++ {
			frames = append(frames, float64(f))
		}
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tNODE\tTYPE\tVALUE\tSUCCEEDED\tERROR")
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.HasFrames {
			s.SetTime(attribute.SecondsFrom(frame, s.Units().Time))
		}
		for _, name := range s.Nodes() {
			row, err := readNode(ctx, s, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\n", strconv.FormatFloat(frame, 'g', -1, 64), row)
		}
	}
	return tw.Flush()
}

// readNode pulls the live output and the status outputs of the node called
// name and formats them as tab separated columns.
func readNode(ctx context.Context, s *scene.Scene, name string) (string, error) {
	n, ok := s.Node(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", scene.ErrNotFound, name)
	}

	t := n.OutputType()
	value, _, evalErr := s.Get(ctx, name, node.Plug{Output: node.OutputFor(t)})
	if evalErr != nil && !errors.Is(evalErr, node.ErrEvaluationFailed) {
		return "", evalErr
	}

	succeeded, _, err := s.Get(ctx, name, node.Plug{Output: node.Succeeded})
	if err != nil && !errors.Is(err, node.ErrEvaluationFailed) {
		return "", err
	}
	message, _, err := s.Get(ctx, name, node.Plug{Output: node.ErrorString})
	if err != nil && !errors.Is(err, node.ErrEvaluationFailed) {
		return "", err
	}

	errColumn, _ := message.(string)
	if errColumn == "" && evalErr != nil {
		errColumn = evalErr.Error()
	}
	if errColumn == "" {
		errColumn = "-"
	}
	errColumn = strings.Join(strings.Fields(errColumn), " ")

	return fmt.Sprintf("%s\t%s\t%s\t%v\t%s", name, t, formatValue(value), succeeded, errColumn), nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, " ") + "]"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
