package loader

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gatgui/pyexpr/internal/helpers"
	"github.com/spf13/afero"
)

// FromFile implements the Loader interface for a file on an afero filesystem.
type FromFile struct {
	fs        afero.Fs
	path      string
	sourceURL *url.URL
}

// NewFromFile creates a loader for path on fs. The file must exist and be a
// regular file; it is read on every GetReader call.
func NewFromFile(fs afero.Fs, path string) (*FromFile, error) {
	if fs == nil {
		return nil, fmt.Errorf("%w: filesystem is nil", ErrScriptNotAvailable)
	}

	path = strings.TrimPrefix(path, "file://")
	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}

	path = filepath.Clean(path)
	if path == "." || path == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: path is empty or invalid", ErrScriptNotAvailable)
	}

	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrScriptNotAvailable, path)
	}

	return &FromFile{
		fs:        fs,
		path:      path,
		sourceURL: &url.URL{Scheme: "file", Path: filepath.ToSlash(path)},
	}, nil
}

func (l *FromFile) String() string {
	noChkSum := fmt.Sprintf("loader.FromFile{Path: %s}", l.path)

	reader, err := l.GetReader()
	if err != nil {
		return noChkSum
	}
	defer func() { _ = reader.Close() }()

	chksum, err := helpers.ChecksumReader(reader)
	if err != nil {
		return noChkSum
	}
	return fmt.Sprintf("loader.FromFile{Path: %s, SHA256: %s}", l.path, chksum[:8])
}

func (l *FromFile) GetReader() (io.ReadCloser, error) {
	return l.fs.Open(l.path)
}

// GetSourceURL returns the source URL of the script.
func (l *FromFile) GetSourceURL() *url.URL {
	return l.sourceURL
}
