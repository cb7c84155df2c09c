package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config holds the parsed command line.
type Config struct {
	ScenePath string
	LogFormat string
	LogLevel  string

	// Frames is the inclusive frame range to step through. When HasFrames is
	// false the scene is evaluated once at its current time.
	HasFrames  bool
	FrameStart int
	FrameEnd   int
}

// Parse processes command-line arguments. It returns the configuration, true
// when the program should exit cleanly (help requested), or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("pyexpr", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pyexpr - evaluate the expression nodes of a scene file.

Usage:
  pyexpr [options] SCENE_FILE

Arguments:
  SCENE_FILE
    Path to an .hcl scene description.

Options:
`)
		flagSet.PrintDefaults()
	}

	framesFlag := flagSet.String("frames", "", "Frame range to evaluate, as 'start:end' or a single frame.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "expected exactly one scene file"}
	}

	cfg := &Config{
		ScenePath: flagSet.Arg(0),
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *framesFlag != "" {
		start, end, err := parseFrames(*framesFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg.HasFrames = true
		cfg.FrameStart, cfg.FrameEnd = start, end
	}

	return cfg, false, nil
}

func parseFrames(s string) (int, int, error) {
	startStr, endStr, isRange := strings.Cut(s, ":")
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid frames %q: %w", s, err)
	}
	if !isRange {
		return start, start, nil
	}

	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid frames %q: %w", s, err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("invalid frames %q: end is before start", s)
	}
	return start, end, nil
}
