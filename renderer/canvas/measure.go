package canvasrenderer

import (
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/mindexport/fonts"
	"github.com/ByLCY/mindexport/layout"
)

// Measurer implements layout.Measurer with real font metrics instead of the
// per-rune heuristic. Widths are in px at a fixed font size.
type Measurer struct {
	face *canvas.FontFace
}

var _ layout.Measurer = (*Measurer)(nil)

// NewMeasurer loads the regular face at sizePx.
func NewMeasurer(sizePx float64, opts Options) (*Measurer, error) {
	src, err := newFontSource(opts)
	if err != nil {
		return nil, err
	}
	family, err := src.family()
	if err != nil {
		return nil, err
	}
	face := family.Face(toPt(sizePx), canvas.Black, fontStyle(fonts.Regular), canvas.FontNormal)
	return &Measurer{face: face}, nil
}

// TextWidth 返回文本宽度（px）。
func (m *Measurer) TextWidth(s string) float64 {
	if s == "" {
		return 0
	}
	return m.face.TextWidth(s)
}
