// core/nexus/nexus.go

// Package nexus reads the TREES blocks of Nexus files. Only as much of the
// grammar as tree extraction needs is understood: the #NEXUS header,
// BEGIN/END block bracketing, TRANSLATE tables, and TREE/UTREE statements.
// Every other statement is skipped untouched.
package nexus

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"treextract-core/newick"
	"treextract-core/treeio"
)

// FormatName is the capability-list entry for this backend.
const FormatName = "nexus"

// Parse returns the trees declared by the stream's TREES blocks, in file
// order, with TRANSLATE tables applied and rooting annotations dropped.
// A well-formed file with no TREE statements parses to zero records.
func Parse(r io.Reader) ([]treeio.Record, error) {
	stmts, err := treeio.Statements(r)
	if err != nil {
		var perr *treeio.ParseError
		if errors.As(err, &perr) && perr.Format == "" {
			perr.Format = FormatName
		}
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, &treeio.ParseError{Format: FormatName, Line: 1, Msg: "missing #NEXUS header"}
	}
	head := stmts[0]
	token := head.Text
	if i := strings.IndexFunc(token, unicode.IsSpace); i >= 0 {
		token = token[:i]
	}
	// The whole first token must be the header: "#NEXUSX" is not a match.
	if !strings.EqualFold(token, "#NEXUS") {
		return nil, &treeio.ParseError{Format: FormatName, Line: head.Line, Msg: "missing #NEXUS header"}
	}
	stmts[0].Text = strings.TrimSpace(head.Text[len(token):])

	var (
		records   []treeio.Record
		translate map[string]string
		block     string // lower-cased name of the open BEGIN block
	)
	for _, s := range stmts {
		if s.Text == "" {
			continue
		}
		if !s.Terminated {
			return nil, &treeio.ParseError{Format: FormatName, Line: s.Line, Msg: "unexpected end of file: statement missing ';'"}
		}
		keyword, rest := splitKeyword(s.Text)
		switch keyword {
		case "begin":
			block = strings.ToLower(strings.TrimSpace(rest))
			if block == "trees" {
				translate = nil
			}
		case "end", "endblock":
			block = ""
		case "translate":
			if block != "trees" {
				continue
			}
			t, err := parseTranslate(rest, s.Line)
			if err != nil {
				return nil, err
			}
			translate = t
		case "tree", "utree":
			if block != "trees" {
				continue
			}
			rec, err := parseTree(rest, translate, s.Line)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// splitKeyword peels the first whitespace-delimited token off a statement
// and lower-cases it; Nexus keywords are case-insensitive.
func splitKeyword(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(s), ""
	}
	return strings.ToLower(s[:i]), strings.TrimSpace(s[i+1:])
}

// parseTranslate reads "token label, token label, ..." pairs. Labels are
// stored exactly as written (quoted labels keep their quotes) so that
// substituting them into a topology yields valid Newick directly.
func parseTranslate(body string, line int) (map[string]string, error) {
	t := make(map[string]string)
	for _, entry := range splitQuoted(body, ',') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		i := strings.IndexFunc(entry, unicode.IsSpace)
		if i < 0 {
			return nil, &treeio.ParseError{Format: FormatName, Line: line, Msg: fmt.Sprintf("malformed TRANSLATE entry %q", entry)}
		}
		t[entry[:i]] = strings.TrimSpace(entry[i+1:])
	}
	return t, nil
}

// parseTree reads the remainder of a TREE statement: "[*] name = topology".
// The rooting annotation ([&R]/[&U]) is a comment, so the statement scanner
// has already dropped it.
func parseTree(body string, translate map[string]string, line int) (treeio.Record, error) {
	body = strings.TrimSpace(strings.TrimPrefix(body, "*"))
	eq := indexUnquoted(body, '=')
	if eq < 0 {
		return treeio.Record{}, &treeio.ParseError{Format: FormatName, Line: line, Msg: "TREE statement missing '='"}
	}
	name := newick.UnquoteLabel(strings.TrimSpace(body[:eq]))
	if name == "" {
		return treeio.Record{}, &treeio.ParseError{Format: FormatName, Line: line, Msg: "TREE statement missing a name"}
	}
	topo := applyTranslate(treeio.StripSpace(body[eq+1:]), translate)
	if err := newick.ValidateTopology(topo); err != nil {
		var perr *treeio.ParseError
		if errors.As(err, &perr) {
			perr.Format = FormatName
			perr.Line = line
		}
		return treeio.Record{}, err
	}
	return treeio.Record{Name: name, Newick: topo}, nil
}

// splitQuoted splits on sep wherever it falls outside quoted labels.
func splitQuoted(s string, sep rune) []string {
	var parts []string
	var b strings.Builder
	quoted := false
	for _, c := range s {
		if c == '\'' {
			quoted = !quoted
		}
		if c == sep && !quoted {
			parts = append(parts, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(c)
	}
	return append(parts, b.String())
}

// indexUnquoted returns the byte offset of the first sep outside quotes.
func indexUnquoted(s string, sep rune) int {
	quoted := false
	for i, c := range s {
		if c == '\'' {
			quoted = !quoted
		}
		if c == sep && !quoted {
			return i
		}
	}
	return -1
}

// applyTranslate swaps TRANSLATE tokens for their taxon labels. Only node
// labels are candidates; a token right after ':' is a branch length and is
// left alone.
func applyTranslate(topo string, translate map[string]string) string {
	if len(translate) == 0 {
		return topo
	}
	var b strings.Builder
	b.Grow(len(topo))
	inLength := false
	for i := 0; i < len(topo); {
		c := topo[i]
		switch c {
		case '(', ')', ',', ':':
			inLength = c == ':'
			b.WriteByte(c)
			i++
		case '\'':
			j := closeQuote(topo, i)
			b.WriteString(topo[i:j])
			i = j
		default:
			j := i
			for j < len(topo) && !strings.ContainsRune("(),:'", rune(topo[j])) {
				j++
			}
			token := topo[i:j]
			if !inLength {
				if label, ok := translate[token]; ok {
					token = label
				}
			}
			b.WriteString(token)
			i = j
		}
	}
	return b.String()
}

// closeQuote returns the offset just past the quoted label opening at i,
// honoring the '' escape.
func closeQuote(s string, i int) int {
	j := i + 1
	for j < len(s) {
		if s[j] != '\'' {
			j++
			continue
		}
		if j+1 < len(s) && s[j+1] == '\'' {
			j += 2
			continue
		}
		return j + 1
	}
	return j
}
