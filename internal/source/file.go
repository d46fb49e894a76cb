package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalogd/internal/catalog"
)

// File serves the pricing document from a local path. Used for static-data
// builds and offline development; the pipeline output is identical to the
// HTTP source for the same document.
type File struct {
	Path string
}

// Fetch reads and decodes the document from disk.
func (f File) Fetch(_ context.Context) (*catalog.Document, error) {
	path, err := expandHome(f.Path)
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pricing file: %w", err)
	}
	defer fh.Close()
	doc, err := catalog.DecodeDocument(fh)
	if err != nil {
		return nil, fmt.Errorf("decode pricing file %s: %w", path, err)
	}
	return doc, nil
}

// expandHome resolves a leading ~ against the current user's home directory
// so config values like ~/prices.json work.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
