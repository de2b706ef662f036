// Package importer reads the host bookmark tree from disk.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/bmdash/internal/model"
)

var (
	ErrUnknownFormat = errors.New("unknown bookmarks format")
	ErrNoRoots       = errors.New("no bookmark roots found")
)

// Format names accepted by FileProvider.
const (
	FormatAuto   = "auto"
	FormatChrome = "chrome"
	FormatHTML   = "html"
)

// Provider fetches the whole bookmark tree in one call. The root's children
// are the top-level folders.
type Provider interface {
	Tree(ctx context.Context) (*model.Node, error)
}

// FileProvider reads a Chromium Bookmarks file or a Netscape bookmark export.
// The file is read fresh on every call.
type FileProvider struct {
	Path   string
	Format string // auto, chrome, html
}

// Tree implements Provider.
func (p FileProvider) Tree(ctx context.Context) (*model.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}

	format := p.Format
	if format == "" || format == FormatAuto {
		format, err = DetectFormat(p.Path, data)
		if err != nil {
			return nil, err
		}
	}

	return Parse(format, data)
}

// Parse decodes data in the named format.
func Parse(format string, data []byte) (*model.Node, error) {
	switch format {
	case FormatChrome:
		return ParseChrome(bytes.NewReader(data))
	case FormatHTML:
		return ParseHTML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DetectFormat guesses the format from the file extension, then from the
// first non-blank byte.
func DetectFormat(path string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: empty file %s", ErrUnknownFormat, path)
	}
	switch trimmed[0] {
	case '{':
		return FormatChrome, nil
	case '<':
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
