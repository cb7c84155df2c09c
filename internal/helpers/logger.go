package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger returns a handler and a grouped logger for a component.
// A nil handler is replaced by a text handler on stderr grouped under
// component, and a warning is logged about the fallback.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil for defaults
//   - component: The component name (e.g., "starlark", "node", "scene")
//   - groupName: Optional additional group name within the component
func SetupLogger(handler slog.Handler, component string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil).WithGroup(component)
		slog.New(handler).Warn("Handler is nil, using the default logger configuration.")
	}

	if groupName == "" {
		return handler, slog.New(handler)
	}
	return handler, slog.New(handler.WithGroup(groupName))
}

// ResolveLogger picks the logger for a component configured with either an
// explicit logger or a handler. The logger wins when both are set.
func ResolveLogger(
	handler slog.Handler,
	logger *slog.Logger,
	component string,
	groupName string,
) (slog.Handler, *slog.Logger) {
	if logger != nil {
		return logger.Handler(), logger
	}
	return SetupLogger(handler, component, groupName)
}
