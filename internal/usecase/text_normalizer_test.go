package usecase

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	testCases := []struct {
		name   string
		joined string
		want   []string
	}{
		{name: "empty string", joined: "", want: nil},
		{name: "trims and lower-cases", joined: " M6, Pan-Head ,screw", want: []string{"m6", "pan-head", "screw"}},
		{name: "drops blanks", joined: "a,, ,b", want: []string{"a", "b"}},
		{name: "only separators", joined: ", ,", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseTags(tc.joined); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tc.joined, got, tc.want)
			}
		})
	}
}

func TestSanitizeTags(t *testing.T) {
	got := SanitizeTags([]string{" Steel ", "", "  ", "M3"})
	want := []string{"Steel", "M3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeTags() = %v, want %v", got, want)
	}
}

func TestIsWordBoundary(t *testing.T) {
	text := "0.1μF SOT-23"

	testCases := []struct {
		name string
		pos  int
		want bool
	}{
		{name: "start of text", pos: 0, want: true},
		{name: "between digit and dot", pos: 1, want: true},
		{name: "between digit and mu", pos: 3, want: false},
		{name: "between mu and F", pos: 5, want: false},
		{name: "before space", pos: 6, want: true},
		{name: "end of text", pos: len(text), want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isWordBoundary(text, tc.pos); got != tc.want {
				t.Errorf("isWordBoundary(%q, %d) = %v, want %v", text, tc.pos, got, tc.want)
			}
		})
	}
}

func TestBoundedPatternFind(t *testing.T) {
	testCases := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{name: "plain package", text: "LM7805 TO-220 regulator", want: "TO-220", found: true},
		{name: "optional dash", text: "diode do41", want: "do41", found: true},
		{name: "inside a word", text: "XTO-92", found: false},
		{name: "trailing word rune", text: "TO-92A", found: false},
		{name: "alternatives tried in order", text: "SOT-23", want: "SOT-23", found: true},
		{name: "non-ascii neighbour is a word rune", text: "µTO-92", found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pattern := diodePackagePattern
			if tc.name == "alternatives tried in order" {
				pattern = transistorPackagePattern
			}
			got, found := pattern.find(tc.text)
			if found != tc.found || got != tc.want {
				t.Errorf("find(%q) = (%q, %v), want (%q, %v)", tc.text, got, found, tc.want, tc.found)
			}
		})
	}
}

func TestFirstWholeWord(t *testing.T) {
	testCases := []struct {
		text  string
		want  string
		found bool
	}{
		{text: "NaCl 10% solution", want: "NaCl", found: true},
		{text: "sodium chloride", found: false},
		{text: "xH2O", found: false},
		{text: "dilute H2SO4", want: "H2SO4", found: true},
	}

	for _, tc := range testCases {
		got, found := firstWholeWord(tc.text, chemicalFormulaPattern)
		if found != tc.found || got != tc.want {
			t.Errorf("firstWholeWord(%q) = (%q, %v), want (%q, %v)", tc.text, got, found, tc.want, tc.found)
		}
	}
}

func TestUnicodeWhitespace(t *testing.T) {
	// a non-breaking space separates value and unit
	m := ratedVoltagePattern.FindStringSubmatch("12\u00a0V")
	if m == nil || m[1] != "12" {
		t.Errorf("expected 12 to match across a non-breaking space, got %v", m)
	}
}

func TestASCIIDigits(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "M8x20", want: "M8x20"},
		{in: "٦x٥٠", want: "6x50"},
		{in: "۱۲.۵", want: "12.5"},
		{in: "१०", want: "10"},
		{in: "１８", want: "18"},
		{in: "𝟗𝟘", want: "90"},
		{in: "²³", want: "²³"},
	}

	for _, tc := range testCases {
		if got := asciiDigits(tc.in); got != tc.want {
			t.Errorf("asciiDigits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPatternsMatchAnyDigitScript(t *testing.T) {
	m := metricFastenerPattern.FindStringSubmatch("M٦x٥٠ screw")
	if m == nil || m[1] != "٦" || m[2] != "٥٠" {
		t.Errorf("expected arabic-indic digits to match, got %v", m)
	}
}
