package loader

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"

	"github.com/gatgui/pyexpr/internal/helpers"
)

// FromString provides an expression body given inline, such as the value of
// a node's expression attribute or a literal in Go code.
type FromString struct {
	body      string
	sourceURL *url.URL
}

// NewFromString normalizes body and wraps it in a loader. Blank lines
// around the body and trailing spaces are dropped, and the indentation
// shared by every line is removed, so a body written inside an indented
// raw string keeps only its relative layout. A blank body is rejected.
func NewFromString(body string) (*FromString, error) {
	body = dedent(body)
	if body == "" {
		return nil, fmt.Errorf("%w: expression is blank", ErrScriptNotAvailable)
	}

	return &FromString{
		body: body,
		sourceURL: &url.URL{
			Scheme: "expr",
			Host:   "inline",
			Path:   "/" + helpers.ShortChecksum(body),
		},
	}, nil
}

func dedent(body string) string {
	lines := strings.Split(strings.TrimRightFunc(body, unicode.IsSpace), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	var prefix string
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimPrefix(line, prefix), " \t\r")
	}
	return strings.Join(lines, "\n")
}

func (l *FromString) String() string {
	return fmt.Sprintf("loader.FromString{Chars: %d}", len(l.body))
}

// GetReader returns the normalized body.
func (l *FromString) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(l.body)), nil
}

// GetSourceURL identifies the body by checksum, as expr://inline/<sum>.
func (l *FromString) GetSourceURL() *url.URL {
	return l.sourceURL
}
