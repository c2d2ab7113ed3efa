package scene

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RichContent is the content attached to a node. Exactly one variant is
// active: Lines for free text, Table for grid content. A nil RichContent means
// the node has no content container.
type RichContent interface {
	isRichContent()
}

// FragmentKind tags a node of the free-text content tree.
type FragmentKind string

const (
	FragmentText      FragmentKind = "text"
	FragmentLineBreak FragmentKind = "br"
	FragmentParagraph FragmentKind = "p"
	FragmentBlock     FragmentKind = "div"
	FragmentListItem  FragmentKind = "li"
	FragmentInline    FragmentKind = "span"
)

// Fragment is one element of the free-text tree. Only FragmentText carries
// Text; every other kind only groups Children.
type Fragment struct {
	Kind     FragmentKind `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Children []Fragment   `json:"children,omitempty"`
}

// BreaksLine reports whether the fragment ends the current line after its
// children have been emitted.
func (f Fragment) BreaksLine() bool {
	switch f.Kind {
	case FragmentLineBreak, FragmentParagraph, FragmentBlock, FragmentListItem:
		return true
	}
	return false
}

// Lines is free-text content, already parsed into blocks by the upstream
// markdown collaborator.
type Lines struct {
	Fragments []Fragment `json:"fragments"`
}

// Row is one table row. Header marks rows the source flagged explicitly.
type Row struct {
	Cells  []string `json:"cells"`
	Header bool     `json:"header,omitempty"`
}

// Table is grid content.
type Table struct {
	Rows []Row `json:"rows"`
}

func (Lines) isRichContent() {}
func (Table) isRichContent() {}

// Text returns a text fragment.
func Text(s string) Fragment { return Fragment{Kind: FragmentText, Text: s} }

// Paragraph wraps children in a paragraph fragment.
func Paragraph(children ...Fragment) Fragment {
	return Fragment{Kind: FragmentParagraph, Children: children}
}

// TextLines builds Lines content with one paragraph per string.
func TextLines(lines ...string) Lines {
	frags := make([]Fragment, 0, len(lines))
	for _, l := range lines {
		frags = append(frags, Paragraph(Text(l)))
	}
	return Lines{Fragments: frags}
}

// NewTable builds a table from raw cell rows.
func NewTable(rows ...[]string) Table {
	t := Table{Rows: make([]Row, 0, len(rows))}
	for _, cells := range rows {
		t.Rows = append(t.Rows, Row{Cells: cells})
	}
	return t
}

// IsEmpty reports whether c carries no visible text.
func IsEmpty(c RichContent) bool {
	switch v := c.(type) {
	case nil:
		return true
	case Lines:
		return !hasText(v.Fragments)
	case Table:
		for _, r := range v.Rows {
			for _, cell := range r.Cells {
				if strings.TrimSpace(cell) != "" {
					return false
				}
			}
		}
		return true
	default:
		return true
	}
}

func hasText(frags []Fragment) bool {
	for _, f := range frags {
		if f.Kind == FragmentText && strings.TrimSpace(f.Text) != "" {
			return true
		}
		if hasText(f.Children) {
			return true
		}
	}
	return false
}

// contentJSON is the wire envelope for RichContent.
type contentJSON struct {
	Kind      string     `json:"kind"`
	Fragments []Fragment `json:"fragments,omitempty"`
	Rows      []Row      `json:"rows,omitempty"`
}

type nodeAlias Node

type nodeJSON struct {
	nodeAlias
	Content *contentJSON `json:"content,omitempty"`
}

// MarshalJSON encodes the node with its content in a tagged envelope.
func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{nodeAlias: nodeAlias(n)}
	switch c := n.Content.(type) {
	case nil:
	case Lines:
		out.Content = &contentJSON{Kind: "lines", Fragments: c.Fragments}
	case Table:
		out.Content = &contentJSON{Kind: "table", Rows: c.Rows}
	default:
		return nil, fmt.Errorf("scene: unsupported content type %T", c)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a node written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*n = Node(in.nodeAlias)
	if in.Content == nil {
		return nil
	}
	switch in.Content.Kind {
	case "lines":
		n.Content = Lines{Fragments: in.Content.Fragments}
	case "table":
		n.Content = Table{Rows: in.Content.Rows}
	default:
		return fmt.Errorf("scene: node %q has unknown content kind %q", n.ID, in.Content.Kind)
	}
	return nil
}
