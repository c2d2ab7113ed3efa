package layout

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/mindexport/scene"
)

// stubMeasurer 是测试用的最小实现：每个字符固定 50px，便于断言列宽。
type stubMeasurer struct{ calls int }

func (s *stubMeasurer) TextWidth(text string) float64 {
	s.calls++
	return float64(utf8.RuneCountInString(text)) * 50
}

func sampleScene() *scene.Scene {
	return &scene.Scene{
		Name: "sample",
		Nodes: []scene.Node{
			{ID: "root", X: -40, Y: -20, NativeBounds: box(-40, -20, 60, 10), Content: scene.TextLines("Root")},
			{ID: "table", X: 200, Y: 100, NativeBounds: box(200, 100, 420, 160), Content: scene.NewTable([]string{"Key", "Value"}, []string{"a", "b"})},
			{ID: "bare", X: 500, Y: 500},
		},
		RootTransform: "translate(999, 999) scale(2)",
	}
}

func TestBuildPlacesCommandsAbsolutely(t *testing.T) {
	res, err := Build(sampleScene(), scene.Light, BuildOptions{})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if want := (scene.BoundingBox{MinX: -40, MinY: -20, MaxX: 420, MaxY: 160}); res.Bounds != want {
		t.Fatalf("bounds = %+v, want %+v", res.Bounds, want)
	}
	if res.Frame.Width != 660 || res.Frame.Height != 380 || res.Frame.TranslateX != 140 || res.Frame.TranslateY != 120 {
		t.Fatalf("frame = %+v", res.Frame)
	}
	if len(res.Placements) != 2 {
		t.Fatalf("nodes without content must be skipped, got %d placements", len(res.Placements))
	}
	root := res.Placements[0].Commands[0]
	if root.X != -40 || root.Y != -4 || root.Text != "Root" {
		t.Fatalf("root command = %+v", root)
	}
	cmds := res.Commands()
	if len(cmds) != 5 {
		t.Fatalf("expected 5 commands, got %d", len(cmds))
	}
	if last := cmds[4]; last.Text != "b" || last.X != 300 || last.Y != 138 || last.NodeID != "table" {
		t.Fatalf("last command = %+v", last)
	}
}

func TestBuildUsesMeasurerAndPadding(t *testing.T) {
	m := &stubMeasurer{}
	res, err := Build(sampleScene(), scene.Light, BuildOptions{Padding: 10, Measurer: m})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if m.calls == 0 {
		t.Fatal("measurer was not consulted")
	}
	if res.Frame.Width != 480 {
		t.Fatalf("frame width = %d, want 480", res.Frame.Width)
	}
	// "Value" = 5*50+24 widens column 0 to "Key" = 3*50+24 = 174
	table := res.Placements[1].Commands
	if table[1].Text != "Value" || table[1].X != 200+174 {
		t.Fatalf("second column placed at %+v", table[1])
	}
}

func TestBuildNilScene(t *testing.T) {
	if _, err := Build(nil, scene.Light, BuildOptions{}); err == nil {
		t.Fatal("期望空场景返回错误")
	}
}

func TestWriteDebugJSON(t *testing.T) {
	res, err := Build(sampleScene(), scene.Dark, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeDebugJSON(&buf, res); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var back Result
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Frame != res.Frame || len(back.Placements) != len(res.Placements) {
		t.Fatalf("debug JSON lost data: %+v", back)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("write: %v", err)
	}
}
