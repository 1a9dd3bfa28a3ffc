// internal/extract/extract.go

// Package extract assigns every parsed tree its final, file-ready name.
package extract

import (
	"errors"
	"strconv"

	"treextract-core/treeio"
)

// ErrNoTrees reports input that parsed cleanly but held no trees. It is a
// hard error rather than a no-op: an empty extraction almost always means
// the wrong --format was declared or the file is empty.
var ErrNoTrees = errors.New("the file was parsed successfully, but no trees were found")

// NamedTree is a tree ready to persist: its final name and its topology
// without the trailing ';'.
type NamedTree struct {
	Name   string
	Newick string
}

// Extract names every record: the embedded name when there is one, else
// "<prefix>_<index>" from the record's zero-based position. Input order is
// preserved. Each name is computed from its own record alone; there is no
// cross-record collision check, so two trees can resolve to the same name
// and the later file wins.
func Extract(records []treeio.Record, prefix string) ([]NamedTree, error) {
	if len(records) == 0 {
		return nil, ErrNoTrees
	}
	trees := make([]NamedTree, len(records))
	for i, rec := range records {
		name := rec.Name
		if name == "" {
			name = prefix + "_" + strconv.Itoa(i)
		}
		trees[i] = NamedTree{Name: name, Newick: rec.Newick}
	}
	return trees, nil
}
