// Package richtext converts the HTML a mind-map renderer puts inside a node
// into scene content.
package richtext

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/scene"
)

// ParseHTML parses a node's HTML fragment. A fragment containing a <table>
// becomes scene.Table built from the first table; anything else becomes
// scene.Lines. Whitespace-only text is dropped.
func ParseHTML(r io.Reader) (scene.RichContent, error) {
	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(r, parent)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse node html")
	}
	for _, n := range nodes {
		if t := findElement(n, atom.Table); t != nil {
			return parseTable(t), nil
		}
	}
	var frags []scene.Fragment
	for _, n := range nodes {
		frags = append(frags, fragments(n)...)
	}
	return scene.Lines{Fragments: frags}, nil
}

// ParseHTMLString is ParseHTML over a string.
func ParseHTMLString(s string) (scene.RichContent, error) {
	return ParseHTML(strings.NewReader(s))
}

func fragments(n *html.Node) []scene.Fragment {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		return []scene.Fragment{scene.Text(text)}
	case html.ElementNode:
		if shouldSkip(n.DataAtom) {
			return nil
		}
		var children []scene.Fragment
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, fragments(c)...)
		}
		return []scene.Fragment{{Kind: kindOf(n.DataAtom), Children: children}}
	case html.DocumentNode:
		var children []scene.Fragment
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, fragments(c)...)
		}
		return children
	}
	return nil
}

// kindOf maps an element to the fragment kind that decides line breaking.
// Elements without a line-breaking role flow inline.
func kindOf(a atom.Atom) scene.FragmentKind {
	switch a {
	case atom.Br:
		return scene.FragmentLineBreak
	case atom.P:
		return scene.FragmentParagraph
	case atom.Div:
		return scene.FragmentBlock
	case atom.Li:
		return scene.FragmentListItem
	default:
		return scene.FragmentInline
	}
}

func shouldSkip(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Math, atom.Iframe, atom.Object, atom.Embed:
		return true
	}
	return false
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// parseTable reads rows from thead, tbody, tfoot and direct tr children.
// Rows under thead or holding a th cell are header rows.
func parseTable(table *html.Node) scene.Table {
	var t scene.Table
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Thead:
			t.Rows = append(t.Rows, parseRows(c, true)...)
		case atom.Tbody, atom.Tfoot:
			t.Rows = append(t.Rows, parseRows(c, false)...)
		case atom.Tr:
			if row, ok := parseRow(c, false); ok {
				t.Rows = append(t.Rows, row)
			}
		}
	}
	return t
}

func parseRows(section *html.Node, header bool) []scene.Row {
	var rows []scene.Row
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
			if row, ok := parseRow(c, header); ok {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func parseRow(tr *html.Node, header bool) (scene.Row, bool) {
	row := scene.Row{Header: header}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		if c.DataAtom == atom.Th {
			row.Header = true
		}
		row.Cells = append(row.Cells, textContent(c))
	}
	return row, len(row.Cells) > 0
}

// textContent joins the trimmed text runs below n with single spaces.
func textContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		if n.Type == html.ElementNode && shouldSkip(n.DataAtom) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
