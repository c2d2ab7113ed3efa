package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ByLCY/mindexport/scene"
)

func TestEstimateTextWidth(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"abcd", 32},
		{"漢字", 28},
		{"あ", 14},
		{"カタカナ", 56},
		{"。、", 28},
		{"ＡＢ", 28},
		{"a漢", 22},
		{"한", 8},
	}
	for _, tt := range tests {
		if got := EstimateTextWidth(tt.in); got != tt.want {
			t.Errorf("EstimateTextWidth(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
	if EstimateTextWidth("漢字") == EstimateTextWidth("abcd") {
		t.Fatal("two CJK runes must not measure like four latin runes")
	}
}

func TestColumnWidthsScenarioB(t *testing.T) {
	tbl := scene.NewTable([]string{"H1", "H2"}, []string{"あ", "b"})
	got := ColumnWidths(tbl)
	if want := []float64{100, 100}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ColumnWidths = %v, want %v", got, want)
	}

	cmds := Flatten(scene.Node{ID: "t", Content: tbl}, scene.Light)
	want := []Command{
		{X: 0, Y: 16, Text: "H1", FontSizePx: 11, FontWeight: 600, Fill: "#000000", NodeID: "t"},
		{X: 100, Y: 16, Text: "H2", FontSizePx: 11, FontWeight: 600, Fill: "#000000", NodeID: "t"},
		{X: 0, Y: 38, Text: "あ", FontSizePx: 11, FontWeight: 400, Fill: "#000000", NodeID: "t"},
		{X: 100, Y: 38, Text: "b", FontSizePx: 11, FontWeight: 400, Fill: "#000000", NodeID: "t"},
	}
	if !reflect.DeepEqual(cmds, want) {
		t.Fatalf("Flatten = %+v\nwant %+v", cmds, want)
	}
}

func TestColumnWidthsMonotonic(t *testing.T) {
	cell := ""
	prev := 0.0
	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			cell += "字"
		} else {
			cell += "x"
		}
		w := ColumnWidths(scene.NewTable([]string{"h", "other"}, []string{cell, "y"}))
		if w[0] < tableMinColumn || w[1] < tableMinColumn {
			t.Fatalf("column below minimum: %v", w)
		}
		if w[0] < prev {
			t.Fatalf("width shrank from %g to %g at length %d", prev, w[0], i+1)
		}
		prev = w[0]
	}
	if prev <= tableMinColumn {
		t.Fatalf("long cell should widen the column, got %g", prev)
	}
}

func TestTableRaggedRowsAndHeaders(t *testing.T) {
	tbl := scene.Table{Rows: []scene.Row{
		{Cells: []string{"Name", "", "Notes"}},
		{Cells: []string{"  alpha  "}},
		{Cells: []string{"Total", strings.Repeat("9", 20)}, Header: true},
	}}
	widths := ColumnWidths(tbl)
	if want := []float64{100, 184, 100}; !reflect.DeepEqual(widths, want) {
		t.Fatalf("widths = %v, want %v", widths, want)
	}
	cmds := Flatten(scene.Node{ID: "n", Content: tbl}, scene.Dark)
	if len(cmds) != 5 {
		t.Fatalf("expected 5 commands, got %d: %+v", len(cmds), cmds)
	}
	// the empty header cell still advances x
	if cmds[1].Text != "Notes" || cmds[1].X != 284 {
		t.Errorf("Notes placed at %+v", cmds[1])
	}
	if cmds[2].Text != "alpha" || cmds[2].FontWeight != 400 || cmds[2].Y != 38 {
		t.Errorf("body row = %+v", cmds[2])
	}
	if cmds[4].FontWeight != 600 || cmds[4].Y != 60 || cmds[4].X != 100 {
		t.Errorf("flagged header = %+v", cmds[4])
	}
	for _, c := range cmds {
		if c.Fill != scene.Dark.Text {
			t.Errorf("fill = %s, want theme text colour", c.Fill)
		}
	}
}

func TestFlowLines(t *testing.T) {
	p := scene.Paragraph
	txt := scene.Text
	span := func(children ...scene.Fragment) scene.Fragment {
		return scene.Fragment{Kind: scene.FragmentInline, Children: children}
	}
	tests := []struct {
		name  string
		frags []scene.Fragment
		want  []string
	}{
		{"paragraphs", []scene.Fragment{p(txt("Hello")), p(txt("World"))}, []string{"Hello", "World"}},
		{"inline joins with space", []scene.Fragment{p(txt("a"), span(txt(" b ")), txt("c"))}, []string{"a b c"}},
		{"br splits", []scene.Fragment{txt("one"), {Kind: scene.FragmentLineBreak}, txt("two")}, []string{"one", "two"}},
		{"blank runs dropped", []scene.Fragment{p(txt("  ")), p(), p(txt("x"))}, []string{"x"}},
		{"list items", []scene.Fragment{{Kind: scene.FragmentBlock, Children: []scene.Fragment{
			{Kind: scene.FragmentListItem, Children: []scene.Fragment{txt("first")}},
			{Kind: scene.FragmentListItem, Children: []scene.Fragment{span(txt("second")), txt("item")}},
		}}}, []string{"first", "second item"}},
		{"trailing run", []scene.Fragment{p(txt("head")), txt("tail")}, []string{"head", "tail"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlowLines(tt.frags); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FlowLines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlattenLines(t *testing.T) {
	cmds := Flatten(scene.Node{ID: "n1", X: 40, Y: 50, Content: scene.TextLines("Hello", "World")}, scene.Dark)
	want := []Command{
		{X: 0, Y: 16, Text: "Hello", FontSizePx: 14, FontWeight: 500, Fill: "#FFFFFF", NodeID: "n1"},
		{X: 0, Y: 34, Text: "World", FontSizePx: 14, FontWeight: 500, Fill: "#FFFFFF", NodeID: "n1"},
	}
	if !reflect.DeepEqual(cmds, want) {
		t.Fatalf("Flatten = %+v\nwant %+v", cmds, want)
	}
}

func TestFlattenWithoutContent(t *testing.T) {
	if cmds := Flatten(scene.Node{ID: "empty"}, scene.Light); len(cmds) != 0 {
		t.Fatalf("expected no commands, got %+v", cmds)
	}
	if cmds := Flatten(scene.Node{ID: "blank", Content: scene.Lines{}}, scene.Light); len(cmds) != 0 {
		t.Fatalf("expected no commands, got %+v", cmds)
	}
}
