// core/nexml/nexml.go

// Package nexml reads NeXML tree documents (http://www.nexml.org). NeXML
// stores each tree as flat <node> and <edge> lists; this backend rebuilds
// the topology from the edges and serializes it back to Newick.
package nexml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"treextract-core/newick"
	"treextract-core/treeio"
)

// FormatName is the capability-list entry for this backend.
const FormatName = "nexml"

type document struct {
	XMLName xml.Name     `xml:"nexml"`
	Blocks  []treesBlock `xml:"trees"`
}

type treesBlock struct {
	Trees []xmlTree `xml:"tree"`
}

type xmlTree struct {
	ID    string    `xml:"id,attr"`
	Label string    `xml:"label,attr"`
	Nodes []xmlNode `xml:"node"`
	Edges []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
	Root  bool   `xml:"root,attr"`
}

type xmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Length string `xml:"length,attr"`
}

// Parse decodes a NeXML document and returns one record per <tree>, in
// document order. The record name is the tree's label, else its id, so
// NeXML trees are effectively always named.
func Parse(r io.Reader) ([]treeio.Record, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		perr := &treeio.ParseError{Format: FormatName, Msg: err.Error()}
		if errors.Is(err, io.EOF) {
			perr.Msg = "empty document"
		}
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			perr.Line = syn.Line
			perr.Msg = syn.Msg
		}
		return nil, perr
	}
	var records []treeio.Record
	for _, block := range doc.Blocks {
		for _, t := range block.Trees {
			rec, err := convert(t)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func treeName(t xmlTree) string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}

func perrf(format string, args ...interface{}) *treeio.ParseError {
	return &treeio.ParseError{Format: FormatName, Msg: fmt.Sprintf(format, args...)}
}

// convert rebuilds one tree from its node and edge lists and emits Newick.
// Children keep document edge order, so serialization is deterministic.
func convert(t xmlTree) (treeio.Record, error) {
	name := treeName(t)
	if len(t.Nodes) == 0 {
		return treeio.Record{}, perrf("tree %q has no nodes", name)
	}

	nodes := make(map[string]xmlNode, len(t.Nodes))
	for _, n := range t.Nodes {
		if n.ID == "" {
			return treeio.Record{}, perrf("tree %q has a node without an id", name)
		}
		if _, dup := nodes[n.ID]; dup {
			return treeio.Record{}, perrf("tree %q repeats node id %q", name, n.ID)
		}
		nodes[n.ID] = n
	}

	children := make(map[string][]xmlEdge, len(t.Nodes))
	parent := make(map[string]string, len(t.Nodes))
	for _, e := range t.Edges {
		if _, ok := nodes[e.Source]; !ok {
			return treeio.Record{}, perrf("tree %q edge names unknown source %q", name, e.Source)
		}
		if _, ok := nodes[e.Target]; !ok {
			return treeio.Record{}, perrf("tree %q edge names unknown target %q", name, e.Target)
		}
		if _, seen := parent[e.Target]; seen {
			return treeio.Record{}, perrf("tree %q node %q has two parents", name, e.Target)
		}
		parent[e.Target] = e.Source
		children[e.Source] = append(children[e.Source], e)
	}

	root := ""
	for _, n := range t.Nodes {
		if !n.Root {
			continue
		}
		if root != "" {
			return treeio.Record{}, perrf("tree %q flags more than one root node", name)
		}
		root = n.ID
	}
	if root == "" {
		for _, n := range t.Nodes {
			if _, hasParent := parent[n.ID]; hasParent {
				continue
			}
			if root != "" {
				return treeio.Record{}, perrf("tree %q is disconnected: %q and %q both lack a parent", name, root, n.ID)
			}
			root = n.ID
		}
	}
	if root == "" {
		return treeio.Record{}, perrf("tree %q has no root: every node has a parent", name)
	}

	var b strings.Builder
	visited := make(map[string]bool, len(t.Nodes))
	if err := writeClade(&b, nodes, children, visited, root, name); err != nil {
		return treeio.Record{}, err
	}
	if len(visited) != len(t.Nodes) {
		return treeio.Record{}, perrf("tree %q has %d node(s) unreachable from the root", name, len(t.Nodes)-len(visited))
	}
	return treeio.Record{Name: name, Newick: b.String()}, nil
}

func writeClade(b *strings.Builder, nodes map[string]xmlNode, children map[string][]xmlEdge, visited map[string]bool, id, tree string) error {
	// Single-parent edges still admit cycles (an edge back to an ancestor,
	// or a self-edge); revisiting a node means one exists.
	if visited[id] {
		return perrf("tree %q contains a cycle through node %q", tree, id)
	}
	visited[id] = true
	n := nodes[id]
	kids := children[id]
	if len(kids) == 0 {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		b.WriteString(newick.QuoteLabel(label))
		return nil
	}
	b.WriteByte('(')
	for i, e := range kids {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeClade(b, nodes, children, visited, e.Target, tree); err != nil {
			return err
		}
		if e.Length != "" {
			b.WriteByte(':')
			b.WriteString(e.Length)
		}
	}
	b.WriteByte(')')
	if n.Label != "" {
		b.WriteString(newick.QuoteLabel(n.Label))
	}
	return nil
}
