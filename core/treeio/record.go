// core/treeio/record.go

// Package treeio holds the types and stream plumbing shared by the tree
// format backends: the parsed-tree record, structured parse errors, the
// semicolon statement scanner, and gzip/stdin-aware file opening.
package treeio

import "fmt"

// Record is one tree pulled out of a multi-tree file: the embedded name, if
// the source format carried one, and the Newick serialization of the
// topology without its trailing ';'.
type Record struct {
	Name   string
	Newick string
}

// ParseError reports malformed input. Format and Line are best effort; a
// zero Line means the position is unknown.
type ParseError struct {
	Format string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	switch {
	case e.Format != "" && e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", e.Format, e.Line, e.Msg)
	case e.Format != "":
		return fmt.Sprintf("%s: %s", e.Format, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}
