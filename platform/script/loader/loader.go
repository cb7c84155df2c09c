package loader

import (
	"errors"
	"fmt"
	"io"
	"net/url"
)

var (
	ErrScriptNotAvailable = errors.New("script not available")
	ErrSchemeUnsupported  = errors.New("unsupported scheme")
)

// Loader provides the source text of an expression body.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

// ReadAll reads the complete content of l.
func ReadAll(l Loader) (string, error) {
	if l == nil {
		return "", fmt.Errorf("%w: loader is nil", ErrScriptNotAvailable)
	}

	reader, err := l.GetReader()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrScriptNotAvailable, err)
	}
	defer func() { _ = reader.Close() }()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", l.GetSourceURL(), err)
	}
	return string(content), nil
}
