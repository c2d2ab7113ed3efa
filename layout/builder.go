package layout

import (
	"fmt"

	"github.com/ByLCY/mindexport/scene"
)

// Build 对场景执行完整布局：聚合包围盒、归一化画布、展平每个节点的内容，
// 并把文本命令放到节点的绝对坐标上。
func Build(s *scene.Scene, th scene.Theme, opts BuildOptions) (*Result, error) {
	if s == nil {
		return nil, fmt.Errorf("layout: scene is nil")
	}
	bounds, measured := AggregateBounds(s)
	return &Result{
		Bounds:     bounds,
		Frame:      FrameFor(bounds, measured, opts.padding()),
		Placements: Place(s, th, opts),
	}, nil
}

// Place flattens every node and moves its commands to absolute scene
// coordinates. Nodes that produce no commands are left out; node order is
// kept so later nodes paint on top.
func Place(s *scene.Scene, th scene.Theme, opts BuildOptions) []Placement {
	m := opts.measurer()
	placements := make([]Placement, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		cmds := flatten(n, th, m)
		if len(cmds) == 0 {
			continue
		}
		// 局部坐标 → 绝对坐标
		for i := range cmds {
			cmds[i].X += n.X
			cmds[i].Y += n.Y
		}
		placements = append(placements, Placement{NodeID: n.ID, X: n.X, Y: n.Y, Commands: cmds})
	}
	return placements
}
