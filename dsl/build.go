package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/mindexport/binding"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/layout"
	"github.com/ByLCY/mindexport/richtext"
	"github.com/ByLCY/mindexport/scene"
)

// edgeStrokeWidth matches the stroke of mind-map links.
const edgeStrokeWidth = 1.5

// Options configures Build.
type Options struct {
	// Vars expands ${path} placeholders in every string of the file.
	Vars binding.Vars
}

// Settings are the top-level assignments of a file.
type Settings struct {
	Name          string
	Theme         string
	RootTransform string
}

// Settings returns the file's top-level assignments. The scene title falls
// back to the name after the `scene` keyword.
func (f *File) Settings() Settings {
	s := Settings{Name: string(f.Name)}
	if f.Block == nil {
		return s
	}
	for _, st := range f.Block.Statements {
		if st.Assignment == nil {
			continue
		}
		switch st.Assignment.Key {
		case "name", "title":
			s.Name = st.Assignment.Value.Text()
		case "theme":
			s.Theme = st.Assignment.Value.Text()
		case "root-transform":
			s.RootTransform = st.Assignment.Value.Text()
		}
	}
	return s
}

// Load parses r and builds the scene it describes.
func Load(r io.Reader, opts Options) (*scene.Scene, Settings, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, Settings{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse scene")
	}
	s, err := Build(f, opts)
	if err != nil {
		return nil, Settings{}, err
	}
	return s, f.Settings(), nil
}

type nodeRef struct {
	node   scene.Node
	width  float64
	height float64
}

type builder struct {
	vars  binding.Vars
	nodes map[string]*nodeRef
	out   *scene.Scene
}

// Build converts a parsed file into a scene. Nodes and shapes keep file
// order; edges are resolved after all nodes are known so they may refer to
// nodes declared later.
func Build(f *File, opts Options) (*scene.Scene, error) {
	if f == nil || f.Block == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene file is empty")
	}
	set := f.Settings()
	b := &builder{
		vars:  opts.Vars,
		nodes: map[string]*nodeRef{},
		out: &scene.Scene{
			Name:          opts.Vars.Expand(set.Name),
			RootTransform: set.RootTransform,
		},
	}

	var edges []*Command
	for _, st := range f.Block.Statements {
		switch {
		case st.Assignment != nil:
			switch st.Assignment.Key {
			case "name", "title", "theme", "root-transform":
			default:
				return nil, posErr(st.Assignment.Pos, "unknown setting %q", st.Assignment.Key)
			}
		case st.Text != nil:
			return nil, posErr(st.Text.Pos, "text outside a node")
		case st.Command != nil:
			cmd := st.Command
			var err error
			switch cmd.Name {
			case "node":
				err = b.node(cmd)
			case "edge":
				edges = append(edges, cmd)
			case "path", "line", "circle":
				err = b.shape(cmd)
			default:
				err = posErr(cmd.Pos, "unknown command %q", cmd.Name)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	for _, cmd := range edges {
		if err := b.edge(cmd); err != nil {
			return nil, err
		}
	}
	return b.out, nil
}

// node handles `node ID [at X Y] [size W H] [depth N] { body }`.
func (b *builder) node(cmd *Command) error {
	args := cmd.Args
	if len(args) == 0 {
		return posErr(cmd.Pos, "node needs an id")
	}
	id := b.vars.Expand(args[0].Value)
	if _, dup := b.nodes[id]; dup {
		return posErr(args[0].Pos, "duplicate node %q", id)
	}
	ref := &nodeRef{node: scene.Node{ID: id}}
	sized := false
	for i := 1; i < len(args); {
		key := args[i]
		var (
			vals []float64
			err  error
		)
		switch key.Value {
		case "at":
			vals, err = lengths(args, i+1, 2)
			if err == nil {
				ref.node.X, ref.node.Y = vals[0], vals[1]
			}
			i += 3
		case "size":
			vals, err = lengths(args, i+1, 2)
			if err == nil {
				ref.width, ref.height, sized = vals[0], vals[1], true
			}
			i += 3
		case "depth":
			vals, err = lengths(args, i+1, 1)
			if err == nil {
				ref.node.Depth = int(vals[0])
			}
			i += 2
		default:
			return posErr(key.Pos, "unexpected %q in node %s", key.Value, id)
		}
		if err != nil {
			return posErr(key.Pos, "node %s: %s: %v", id, key.Value, err)
		}
	}
	if sized {
		box := scene.Box(ref.node.X, ref.node.Y, ref.width, ref.height)
		ref.node.NativeBounds = &box
	}
	content, err := b.content(id, cmd.Block)
	if err != nil {
		return err
	}
	ref.node.Content = content
	b.nodes[id] = ref
	b.out.Nodes = append(b.out.Nodes, ref.node)
	return nil
}

// content reads a node body: bare strings are lines, `html "..."` is parsed
// markup, `header`/`row` build a table.
func (b *builder) content(id string, block *Block) (scene.RichContent, error) {
	if block == nil {
		return nil, nil
	}
	var (
		lines []scene.Fragment
		table scene.Table
		html  scene.RichContent
	)
	for _, st := range block.Statements {
		switch {
		case st.Text != nil:
			lines = append(lines, scene.Paragraph(scene.Text(b.vars.Expand(string(st.Text.Value)))))
		case st.Command != nil:
			cmd := st.Command
			switch cmd.Name {
			case "header", "row":
				row := scene.Row{Header: cmd.Name == "header"}
				for _, a := range cmd.Args {
					row.Cells = append(row.Cells, b.vars.Expand(a.Value))
				}
				table.Rows = append(table.Rows, row)
			case "html":
				if len(cmd.Args) != 1 || cmd.Args[0].Type != "String" {
					return nil, posErr(cmd.Pos, "html takes one string")
				}
				c, err := richtext.ParseHTMLString(b.vars.Expand(cmd.Args[0].Value))
				if err != nil {
					return nil, posErr(cmd.Pos, "node %s: %v", id, err)
				}
				html = c
			default:
				return nil, posErr(cmd.Pos, "unknown node content %q", cmd.Name)
			}
		case st.Assignment != nil:
			return nil, posErr(st.Assignment.Pos, "unexpected setting %q in node %s", st.Assignment.Key, id)
		}
	}
	kinds := 0
	for _, used := range []bool{len(lines) > 0, len(table.Rows) > 0, html != nil} {
		if used {
			kinds++
		}
	}
	switch {
	case kinds > 1:
		return nil, errors.New(errors.ErrCodeInvalidInput, "node %s mixes text, table rows and html", id)
	case html != nil:
		return html, nil
	case len(table.Rows) > 0:
		return table, nil
	case len(lines) > 0:
		return scene.Lines{Fragments: lines}, nil
	}
	return nil, nil
}

// shape handles the pass-through primitives:
//
//	path "M0 0 L10 10" [stroke C] [fill C] [width W]
//	line X1 Y1 X2 Y2 [stroke C] [width W]
//	circle CX CY R [fill C] [stroke C] [width W]
func (b *builder) shape(cmd *Command) error {
	var (
		sh   scene.Shape
		rest []*Lexeme
	)
	switch cmd.Name {
	case "path":
		if len(cmd.Args) == 0 || cmd.Args[0].Type != "String" {
			return posErr(cmd.Pos, "path needs a quoted path string")
		}
		sh = scene.Shape{Kind: scene.ShapePath, D: b.vars.Expand(cmd.Args[0].Value)}
		rest = cmd.Args[1:]
	case "line":
		v, err := lengths(cmd.Args, 0, 4)
		if err != nil {
			return posErr(cmd.Pos, "line: %v", err)
		}
		sh = scene.Shape{Kind: scene.ShapeLine, X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
		rest = cmd.Args[4:]
	case "circle":
		v, err := lengths(cmd.Args, 0, 3)
		if err != nil {
			return posErr(cmd.Pos, "circle: %v", err)
		}
		sh = scene.Shape{Kind: scene.ShapeCircle, CX: v[0], CY: v[1], R: v[2]}
		rest = cmd.Args[3:]
	}
	if err := paint(&sh, rest); err != nil {
		return posErr(cmd.Pos, "%s: %v", cmd.Name, err)
	}
	b.out.Shapes = append(b.out.Shapes, sh)
	return nil
}

// edge handles `edge FROM TO [stroke C] [width W]`: a horizontal cubic link
// from the right middle of FROM to the left middle of TO, coloured by the
// depth of TO unless a stroke is given.
func (b *builder) edge(cmd *Command) error {
	if len(cmd.Args) < 2 {
		return posErr(cmd.Pos, "edge needs two node ids")
	}
	from, ok := b.nodes[b.vars.Expand(cmd.Args[0].Value)]
	if !ok {
		return posErr(cmd.Args[0].Pos, "edge from unknown node %q", cmd.Args[0].Value)
	}
	to, ok := b.nodes[b.vars.Expand(cmd.Args[1].Value)]
	if !ok {
		return posErr(cmd.Args[1].Pos, "edge to unknown node %q", cmd.Args[1].Value)
	}
	x1, y1 := from.node.X+from.width, from.node.Y+from.height/2
	x2, y2 := to.node.X, to.node.Y+to.height/2
	mx := (x1 + x2) / 2
	sh := scene.Shape{
		Kind:        scene.ShapePath,
		D:           fmt.Sprintf("M%s %s C%s %s %s %s %s %s", fmtNum(x1), fmtNum(y1), fmtNum(mx), fmtNum(y1), fmtNum(mx), fmtNum(y2), fmtNum(x2), fmtNum(y2)),
		Stroke:      scene.DepthColor(to.node.Depth),
		Fill:        "none",
		StrokeWidth: edgeStrokeWidth,
	}
	if err := paint(&sh, cmd.Args[2:]); err != nil {
		return posErr(cmd.Pos, "edge: %v", err)
	}
	b.out.Shapes = append(b.out.Shapes, sh)
	return nil
}

// paint applies `stroke C`, `fill C` and `width W` pairs.
func paint(sh *scene.Shape, args []*Lexeme) error {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			return fmt.Errorf("%q needs a value", args[i].Value)
		}
		val := args[i+1]
		switch args[i].Value {
		case "stroke":
			sh.Stroke = val.Value
		case "fill":
			sh.Fill = val.Value
		case "width":
			l, err := layout.ParseLength(val.Value)
			if err != nil {
				return fmt.Errorf("width: %w", err)
			}
			sh.StrokeWidth = l.ToPX()
		default:
			return fmt.Errorf("unknown attribute %q", args[i].Value)
		}
	}
	return nil
}

// lengths reads n numbers starting at args[from]. Units convert to px.
func lengths(args []*Lexeme, from, n int) ([]float64, error) {
	if from+n > len(args) {
		return nil, fmt.Errorf("want %d numbers", n)
	}
	out := make([]float64, n)
	for i := range out {
		a := args[from+i]
		if a.Type != "Number" {
			return nil, fmt.Errorf("%q is not a number", a.Value)
		}
		l, err := layout.ParseLength(a.Value)
		if err != nil {
			return nil, err
		}
		out[i] = l.ToPX()
	}
	return out, nil
}

func fmtNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func posErr(pos lexer.Position, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, "%d:%d: %s", pos.Line, pos.Column, fmt.Sprintf(format, args...))
}
