package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/mindexport/scene"
)

const (
	flowFirstBaseline = 16.0
	flowLineAdvance   = 18.0
	flowFontSize      = 14.0
	flowWeight        = 500
)

// FlowLines walks the fragment tree depth-first and joins text runs into
// lines. Block-level fragments end the current line after their children;
// inline fragments do not. Runs on the same line are joined by one space
// unless the line already ends in whitespace. Empty lines are dropped.
func FlowLines(frags []scene.Fragment) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
		}
	}
	var walk func([]scene.Fragment)
	walk = func(fs []scene.Fragment) {
		for _, f := range fs {
			if f.Kind == scene.FragmentText {
				text := strings.TrimSpace(f.Text)
				if text == "" {
					continue
				}
				if cur.Len() > 0 && !endsInSpace(cur.String()) {
					cur.WriteByte(' ')
				}
				cur.WriteString(text)
				continue
			}
			walk(f.Children)
			if f.BreaksLine() {
				flush()
			}
		}
	}
	walk(frags)
	flush()
	return lines
}

func endsInSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

func layoutLines(c scene.Lines, fill string) []Command {
	lines := FlowLines(c.Fragments)
	out := make([]Command, 0, len(lines))
	for i, line := range lines {
		out = append(out, Command{
			X:          0,
			Y:          flowFirstBaseline + float64(i)*flowLineAdvance,
			Text:       line,
			FontSizePx: flowFontSize,
			FontWeight: flowWeight,
			Fill:       fill,
		})
	}
	return out
}
