package layout

import "github.com/ByLCY/mindexport/scene"

// Flatten converts a node's rich content into text commands relative to the
// node's writing origin. A node without content yields no commands.
func Flatten(n scene.Node, th scene.Theme) []Command {
	return flatten(n, th, Heuristic)
}

func flatten(n scene.Node, th scene.Theme, m Measurer) []Command {
	var cmds []Command
	switch c := n.Content.(type) {
	case nil:
		return nil
	case scene.Table:
		cmds = layoutTable(c, th.Text, m)
	case scene.Lines:
		cmds = layoutLines(c, th.Text)
	}
	for i := range cmds {
		cmds[i].NodeID = n.ID
	}
	return cmds
}
