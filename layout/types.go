package layout

import "github.com/ByLCY/mindexport/scene"

// 该文件定义布局结果，供文档组装、栅格化与调试 JSON 共用。

// Command is one positioned text run produced by flattening a node's
// content. X/Y are relative to the node's writing origin until the builder
// places them; Y is the text baseline. Slices of commands are in paint order.
type Command struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Text       string  `json:"text"`
	FontSizePx float64 `json:"fontSizePx"`
	FontWeight int     `json:"fontWeight"`
	Fill       string  `json:"fill"`
	NodeID     string  `json:"nodeId"`
}

// Frame is the padded, zero-origin canvas a scene is exported into.
type Frame struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}

// Placement is the flattened output of one node, already at absolute scene
// coordinates (node position + local offset).
type Placement struct {
	NodeID   string    `json:"nodeId"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Commands []Command `json:"commands"`
}

// Result 保存一次导出的完整布局：包围盒、画布与按节点顺序排列的文本命令。
type Result struct {
	Bounds     scene.BoundingBox `json:"bounds"`
	Frame      Frame             `json:"frame"`
	Placements []Placement       `json:"placements"`
}

// Commands returns every placed command in node order.
func (r *Result) Commands() []Command {
	if r == nil {
		return nil
	}
	n := 0
	for _, p := range r.Placements {
		n += len(p.Commands)
	}
	out := make([]Command, 0, n)
	for _, p := range r.Placements {
		out = append(out, p.Commands...)
	}
	return out
}
