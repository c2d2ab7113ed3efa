package layout

// BuildOptions 配置布局阶段的依赖。
type BuildOptions struct {
	// Padding around the aggregated bounds, in px. Zero selects DefaultPadding.
	Padding int
	// Measurer estimates text widths for table columns. Nil selects the
	// heuristic CJK-aware model.
	Measurer Measurer
}

// Measurer estimates the rendered width of a run of text in px.
type Measurer interface {
	TextWidth(s string) float64
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func(s string) float64

func (f MeasurerFunc) TextWidth(s string) float64 { return f(s) }

// Heuristic is the per-rune width model used when no Measurer is configured.
var Heuristic Measurer = MeasurerFunc(EstimateTextWidth)

func (o BuildOptions) padding() int {
	if o.Padding <= 0 {
		return DefaultPadding
	}
	return o.Padding
}

func (o BuildOptions) measurer() Measurer {
	if o.Measurer == nil {
		return Heuristic
	}
	return o.Measurer
}
