package attribute

import (
	"fmt"
	"log/slog"
	"os"
)

// FunctionalOption is a function that configures a Serializer instance
type FunctionalOption func(*Serializer) error

// WithLogHandler creates an option to set the log handler for the serializer.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(s *Serializer) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		s.logHandler = handler
		s.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the serializer.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(s *Serializer) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		s.logHandler = nil
		return nil
	}
}

func (s *Serializer) applyDefaults() {
	if s.logHandler == nil && s.logger == nil {
		s.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
}

func (s *Serializer) validate() error {
	if s.logHandler == nil && s.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
