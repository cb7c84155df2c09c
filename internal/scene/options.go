package scene

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gatgui/pyexpr/platform/attribute"
)

// FunctionalOption is a function that configures a Scene instance
type FunctionalOption func(*Scene) error

// WithLogHandler creates an option to set the log handler for the scene.
// Expression nodes log through the same handler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(s *Scene) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		s.logHandler = handler
		s.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the scene.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(s *Scene) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		s.logHandler = nil
		return nil
	}
}

// WithUnits sets the display units values are presented in.
func WithUnits(units attribute.DisplayUnits) FunctionalOption {
	return func(s *Scene) error {
		s.units = units
		return nil
	}
}

// WithTime sets the initial scene time in seconds.
func WithTime(seconds float64) FunctionalOption {
	return func(s *Scene) error {
		s.time = seconds
		return nil
	}
}

// applyDefaults sets the default values for a scene
func (s *Scene) applyDefaults() {
	if s.logHandler == nil && s.logger == nil {
		s.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	s.units = attribute.DefaultUnits()
}

// validate checks if the scene configuration is valid
func (s *Scene) validate() error {
	if s.engine == nil {
		return ErrNoEngine
	}
	if s.logHandler == nil && s.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
