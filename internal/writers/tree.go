// internal/writers/tree.go

// Package writers persists extracted trees as standalone Newick files.
package writers

import (
	"fmt"
	"os"
	"path/filepath"

	"treextract/internal/extract"
)

// Ext is the suffix given to every written tree file.
const Ext = ".tre"

// TreePath is the output path for a tree name.
func TreePath(dir, name string) string {
	return filepath.Join(dir, name+Ext)
}

// WriteTree creates (or truncates) <dir>/<name>.tre holding the topology
// plus its ';' terminator and nothing else, not even a trailing newline.
// An existing file with the same name is silently overwritten.
func WriteTree(dir string, t extract.NamedTree) error {
	path := TreePath(dir, t.Name)
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := fh.WriteString(t.Newick + ";"); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
