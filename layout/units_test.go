package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 11, 14, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := Length{Value: Length{Value: pt, Unit: UnitPT}.ToMM(), Unit: UnitMM}.ToPT()
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

// TestLengthToConversions 覆盖像素与 mm/pt/in 之间的换算。
func TestLengthToConversions(t *testing.T) {
	tests := []struct {
		in     Length
		target Unit
		want   float64
	}{
		{Px(96), UnitIN, 1},
		{Px(96), UnitMM, 25.4},
		{Px(16), UnitPT, 12},
		{Length{Value: 1, Unit: UnitIN}, UnitPX, 96},
		{Length{Value: 25.4, Unit: UnitMM}, UnitPX, 96},
		{Length{Value: 12, Unit: UnitPT}, UnitPT, 12},
	}
	for _, tt := range tests {
		if got := tt.in.To(tt.target); math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("%g%s → %s: got %g want %g", tt.in.Value, tt.in.Unit, tt.target, got, tt.want)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"14", Px(14)},
		{" 2.5px ", Px(2.5)},
		{"10PT", Length{Value: 10, Unit: UnitPT}},
		{"3mm", Length{Value: 3, Unit: UnitMM}},
		{"1in", Length{Value: 1, Unit: UnitIN}},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if err != nil {
			t.Fatalf("ParseLength(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLength(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLength("wide"); err == nil {
		t.Fatal("期望非法长度返回错误")
	}
}
