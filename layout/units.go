package layout

// This file defines unit-safe types and helpers for length and line-height.

// Unit represents the unit a length value was authored in.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitPT               // points
)

// Conversion constants between pt and mm (1pt = 1/72in).
const (
	PtToMm = 25.4 / 72
	MmToPt = 72 / 25.4
)

// String returns a short string for a Unit value.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Pt returns a length in points.
func Pt(v float64) Length { return Length{Value: v, Unit: UnitPT} }

// Mm returns a length in millimeters.
func Mm(v float64) Length { return Length{Value: v, Unit: UnitMM} }

// To converts this length to the target unit.
func (l Length) To(target Unit) float64 {
	switch {
	case l.Unit == target, l.Unit == UnitNone, target == UnitNone:
		return l.Value
	case l.Unit == UnitPT && target == UnitMM:
		return l.Value * PtToMm
	case l.Unit == UnitMM && target == UnitPT:
		return l.Value * MmToPt
	}
	return l.Value
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// LineHeightKind distinguishes factor-based vs absolute line-height specification.
type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec is either a factor of the font size (e.g. 1.15x) or an absolute length.
type LineHeightSpec struct {
	Kind   LineHeightKind `json:"kind"`
	Factor float64        `json:"factor,omitempty"`
	Len    Length         `json:"len,omitempty"`
}

// DefaultLineHeight matches the line step of multi-line text in the printed form.
var DefaultLineHeight = LineHeightSpec{Kind: LineHeightFactor, Factor: 1.15}

// Resolve computes the absolute line height in target unit for the given font size.
func (s LineHeightSpec) Resolve(fontSize Length, target Unit) float64 {
	switch s.Kind {
	case LineHeightAbsolute:
		return s.Len.To(target)
	default:
		f := s.Factor
		if f <= 0 {
			f = DefaultLineHeight.Factor
		}
		return fontSize.To(target) * f
	}
}
