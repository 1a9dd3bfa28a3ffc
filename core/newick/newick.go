// core/newick/newick.go

// Package newick reads plain Newick tree files: one parenthesized tree
// statement per ';', whitespace and [comments] insignificant outside quoted
// labels.
package newick

import (
	"errors"
	"fmt"
	"io"

	"treextract-core/treeio"
)

// FormatName is the capability-list entry for this backend.
const FormatName = "newick"

// Parse reads every Newick statement in the stream and returns one record
// per tree, in file order. Plain Newick carries no tree names, so Name is
// always empty. A final tree without its ';' is accepted when the topology
// is otherwise complete.
func Parse(r io.Reader) ([]treeio.Record, error) {
	stmts, err := treeio.Statements(r)
	if err != nil {
		return nil, tagged(err)
	}
	records := make([]treeio.Record, 0, len(stmts))
	for _, s := range stmts {
		topo := treeio.StripSpace(s.Text)
		if err := ValidateTopology(topo); err != nil {
			perr := tagged(err)
			var pe *treeio.ParseError
			if errors.As(perr, &pe) && pe.Line == 0 {
				pe.Line = s.Line
			}
			return nil, perr
		}
		records = append(records, treeio.Record{Newick: topo})
	}
	return records, nil
}

// ValidateTopology checks that s is one syntactically complete Newick tree
// description: parentheses balance, quotes close, and unquoted text stays
// clear of reserved characters.
func ValidateTopology(s string) error {
	if s == "" {
		return &treeio.ParseError{Msg: "empty tree statement"}
	}
	depth := 0
	quoted := false
	for _, c := range s {
		if quoted {
			if c == '\'' {
				quoted = false
			}
			continue
		}
		switch c {
		case '\'':
			quoted = true
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return &treeio.ParseError{Msg: "unbalanced ')'"}
			}
		case '[', ']', ';':
			return &treeio.ParseError{Msg: fmt.Sprintf("reserved character %q in unquoted label", c)}
		}
	}
	if quoted {
		return &treeio.ParseError{Msg: "unterminated quoted label"}
	}
	if depth > 0 {
		return &treeio.ParseError{Msg: "unbalanced '('"}
	}
	return nil
}

// tagged stamps this backend's name onto a structured parse error that does
// not already carry one. Non-structured errors (I/O) pass through untouched.
func tagged(err error) error {
	var perr *treeio.ParseError
	if errors.As(err, &perr) && perr.Format == "" {
		perr.Format = FormatName
	}
	return err
}
