package layout

import (
	"strconv"
	"strings"
)

// This file defines the length units the drawing surfaces work in. Scene
// coordinates are CSS pixels; canvas faces are sized in points and the PDF
// writer lays pages out in millimetres.

// Unit represents the unit of a length value.
type Unit int

const (
	UnitPX Unit = iota // CSS pixels, 96 per inch
	UnitMM             // millimeters
	UnitPT             // points
	UnitIN             // inches
)

// Conversion constants.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToMm = 25.4 / 96
	MmToPx = 96 / 25.4
	PxToPt = 0.75
)

// String returns the CSS suffix of the unit.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	case UnitIN:
		return "in"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) mm() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value
	case UnitPT:
		return l.Value * PtToMm
	case UnitIN:
		return l.Value * 25.4
	default:
		return l.Value * PxToMm
	}
}

// To converts this length to the target unit.
func (l Length) To(target Unit) float64 {
	if l.Unit == target {
		return l.Value
	}
	mm := l.mm()
	switch target {
	case UnitMM:
		return mm
	case UnitPT:
		return mm * MmToPt
	case UnitIN:
		return mm / 25.4
	default:
		return mm * MmToPx
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }
func (l Length) ToPX() float64 { return l.To(UnitPX) }

// Px is shorthand for a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPX} }

// ParseLength parses "14", "14px", "10.5pt", "3mm" or "1in". A bare number is
// taken as pixels.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitPX
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"mm", UnitMM}, {"pt", UnitPT}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}
