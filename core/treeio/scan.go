// core/treeio/scan.go
package treeio

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Statement is one semicolon-delimited statement from a tree file, with
// comments removed and surrounding whitespace trimmed.
type Statement struct {
	Text       string
	Line       int  // 1-based line where the statement's first token sits
	Terminated bool // false only for trailing text with no ';'
}

// Statements splits a stream on ';' characters that sit outside quoted
// labels and outside [bracket] comments. Quoted labels keep their quotes
// ('' is the escape for a literal quote); comments nest and are dropped.
// Text left at EOF without a ';' comes back as a final unterminated
// statement; each backend decides whether that is acceptable.
func Statements(r io.Reader) ([]Statement, error) {
	br := bufio.NewReader(r)

	var (
		out    []Statement
		buf    strings.Builder
		line   = 1
		start  = 0 // line of the first significant rune in buf; 0 = none yet
		depth  = 0 // comment nesting
		quoted bool
	)

	flush := func(terminated bool) {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if text != "" {
			out = append(out, Statement{Text: text, Line: start, Terminated: terminated})
		}
		start = 0
	}

	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if c == '\n' {
			line++
		}

		if depth > 0 {
			switch c {
			case '[':
				depth++
			case ']':
				depth--
			}
			continue
		}

		if quoted {
			buf.WriteRune(c)
			if c != '\'' {
				continue
			}
			next, _, err := br.ReadRune()
			if err == io.EOF {
				quoted = false
				break
			}
			if err != nil {
				return nil, err
			}
			if next == '\'' {
				// Escaped quote: still inside the label.
				buf.WriteRune(next)
			} else {
				if err := br.UnreadRune(); err != nil {
					return nil, err
				}
				quoted = false
			}
			continue
		}

		switch c {
		case '[':
			depth++
		case ']':
			return nil, &ParseError{Line: line, Msg: "unexpected ']' outside a comment"}
		case '\'':
			if start == 0 {
				start = line
			}
			quoted = true
			buf.WriteRune(c)
		case ';':
			flush(true)
		default:
			if start == 0 && !unicode.IsSpace(c) {
				start = line
			}
			buf.WriteRune(c)
		}
	}

	if quoted {
		return nil, &ParseError{Line: line, Msg: "unterminated quoted label"}
	}
	if depth > 0 {
		return nil, &ParseError{Line: line, Msg: "unterminated [comment]"}
	}
	flush(false)
	return out, nil
}

// StripSpace removes whitespace that sits outside quoted labels. Newick
// ignores it; dropping it keeps persisted topologies on one line.
func StripSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	quoted := false
	for _, c := range s {
		if c == '\'' {
			quoted = !quoted
		}
		if quoted || !unicode.IsSpace(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
