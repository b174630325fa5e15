package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Categories recognized by the specification parser.
// CategoryNone means no category was recognized.
const (
	CategoryNone        = ""
	CategoryFastener    = "fastener"
	CategoryResistor    = "resistor"
	CategoryCapacitor   = "capacitor"
	CategoryInductor    = "inductor"
	CategoryDiode       = "diode"
	CategoryTransistor  = "transistor"
	CategoryElectronics = "electronics"
	CategoryPowerSupply = "power supply"
	CategoryWireCable   = "wire/cable"
	CategoryTool        = "tool"
	CategoryChemical    = "chemical"
)

// SpecKind tags the concrete type held by a SpecValue
type SpecKind int

const (
	SpecString SpecKind = iota
	SpecInt
	SpecFloat
)

// SpecValue is a single extracted attribute value: a string, an integer or a float.
type SpecValue struct {
	Kind  SpecKind
	Str   string
	Int   int
	Float float64
}

// StringSpec wraps a string attribute value
func StringSpec(s string) SpecValue {
	return SpecValue{Kind: SpecString, Str: s}
}

// IntSpec wraps an integer attribute value
func IntSpec(i int) SpecValue {
	return SpecValue{Kind: SpecInt, Int: i}
}

// FloatSpec wraps a float attribute value
func FloatSpec(f float64) SpecValue {
	return SpecValue{Kind: SpecFloat, Float: f}
}

// IsNumeric reports whether the value is an integer or a float
func (v SpecValue) IsNumeric() bool {
	return v.Kind == SpecInt || v.Kind == SpecFloat
}

// Number returns the numeric value as float64. Strings yield 0.
func (v SpecValue) Number() float64 {
	switch v.Kind {
	case SpecInt:
		return float64(v.Int)
	case SpecFloat:
		return v.Float
	default:
		return 0
	}
}

// Equal compares two values. Integers and floats compare numerically
// (6 equals 6.0); a string never equals a number.
func (v SpecValue) Equal(other SpecValue) bool {
	if v.IsNumeric() && other.IsNumeric() {
		return v.Number() == other.Number()
	}
	if v.Kind == SpecString && other.Kind == SpecString {
		return v.Str == other.Str
	}
	return false
}

// String renders the value for reasons, differences and tags.
// Floats always carry a decimal point ("50.0").
func (v SpecValue) String() string {
	switch v.Kind {
	case SpecInt:
		return strconv.Itoa(v.Int)
	case SpecFloat:
		return FormatDecimal(v.Float)
	default:
		return v.Str
	}
}

// MarshalJSON encodes the underlying value
func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case SpecInt:
		return json.Marshal(v.Int)
	case SpecFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.Float)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON decodes strings as SpecString, whole numbers as SpecInt
// and everything else numeric as SpecFloat.
func (v *SpecValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = StringSpec(t)
	case float64:
		text := strings.TrimSpace(string(data))
		if i, err := strconv.Atoi(text); err == nil {
			*v = IntSpec(i)
		} else {
			*v = FloatSpec(t)
		}
	default:
		return fmt.Errorf("unsupported spec value %s", string(data))
	}
	return nil
}

// FormatDecimal renders a float the way a shortest-repr formatter does:
// whole numbers keep a trailing ".0" and very small or very large
// magnitudes switch to exponent notation ("1e-07", "1.5e+16").
func FormatDecimal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(sci, "e")
	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return sci
	}
	if exp < -4 || exp >= 16 {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		return fmt.Sprintf("%se%s%02d", mantissa, sign, exp)
	}

	plain := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(plain, ".") {
		plain += ".0"
	}
	return plain
}

// ParsedSpec is the structured result of parsing an item description
type ParsedSpec struct {
	Category   string               `json:"category"`
	Specs      map[string]SpecValue `json:"specs"`
	Tags       []string             `json:"tags"`
	Confidence float64              `json:"confidence"`
}

// NewParsedSpec returns an empty result for the given category
func NewParsedSpec(category string) ParsedSpec {
	return ParsedSpec{
		Category: category,
		Specs:    make(map[string]SpecValue),
		Tags:     []string{},
	}
}

// HasCategory reports whether a category was recognized
func (p ParsedSpec) HasCategory() bool {
	return p.Category != CategoryNone
}

// Clone returns a deep copy so cached results can't be mutated by callers
func (p ParsedSpec) Clone() ParsedSpec {
	out := ParsedSpec{
		Category:   p.Category,
		Specs:      make(map[string]SpecValue, len(p.Specs)),
		Tags:       make([]string, len(p.Tags)),
		Confidence: p.Confidence,
	}
	for k, v := range p.Specs {
		out.Specs[k] = v
	}
	copy(out.Tags, p.Tags)
	return out
}
