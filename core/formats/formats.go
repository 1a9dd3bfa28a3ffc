// core/formats/formats.go

// Package formats is the capability list: the set of tree-file formats the
// parsing backends advertise, and the dispatch from a declared format name
// to its backend.
package formats

import (
	"fmt"
	"io"

	"treextract-core/newick"
	"treextract-core/nexml"
	"treextract-core/nexus"
	"treextract-core/treeio"
)

// ParseFunc reads a whole stream and returns the trees it holds, in order.
type ParseFunc func(io.Reader) ([]treeio.Record, error)

// table order is the advertised order; it is what --list-formats and the
// unknown-format diagnostic print.
var table = []struct {
	Name  string
	Parse ParseFunc
}{
	{newick.FormatName, newick.Parse},
	{nexus.FormatName, nexus.Parse},
	{nexml.FormatName, nexml.Parse},
}

// Names returns the capability list in advertised order.
func Names() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.Name
	}
	return names
}

// IsSupported reports whether name exactly matches a capability entry.
// The match is case-sensitive: "Nexus" is not "nexus".
func IsSupported(name string) bool {
	for _, e := range table {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Parse dispatches the stream to the backend registered for format.
func Parse(r io.Reader, format string) ([]treeio.Record, error) {
	for _, e := range table {
		if e.Name == format {
			return e.Parse(r)
		}
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}
