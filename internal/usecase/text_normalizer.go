package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// unicodeSpace matches every rune a Unicode-aware \s would, not just ASCII whitespace.
const unicodeSpace = `[\t\n\v\f\r \x{1c}-\x{1f}\x{85}\p{Z}]`

// mustCompilePattern compiles a pattern after widening \s to unicodeSpace
// and \d to every decimal digit
func mustCompilePattern(pattern string) *regexp.Regexp {
	pattern = strings.ReplaceAll(pattern, `\s`, unicodeSpace)
	return regexp.MustCompile(strings.ReplaceAll(pattern, `\d`, `\p{Nd}`))
}

// asciiDigits rewrites decimal digits of any script as 0-9. Each script's
// digits form a contiguous run starting at its zero.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII || !unicode.Is(unicode.Nd, r) {
			return r
		}
		zero := r
		for unicode.Is(unicode.Nd, zero-1) {
			zero--
		}
		return '0' + (r-zero)%10
	}, s)
}

// lowerText applies full Unicode lower-casing. A Caser is stateful, so one
// is built per call.
func lowerText(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ParseTags splits a comma-separated tag string into trimmed, lower-cased tags
func ParseTags(joined string) []string {
	if joined == "" {
		return nil
	}
	return NormalizeTags(strings.Split(joined, ","))
}

// NormalizeTags trims and lower-cases tags, dropping blanks
func NormalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, lowerText(tag))
	}
	return out
}

// SanitizeTags trims tags and drops blanks without changing case
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// isWordRune reports whether r belongs to a word: letters, numbers and underscore
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isWordBoundary reports whether pos (a byte offset) sits between a word
// rune and a non-word rune, with the text edges counting as non-word.
func isWordBoundary(text string, pos int) bool {
	var before, after bool
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:pos])
		before = isWordRune(r)
	}
	if pos < len(text) {
		r, _ := utf8.DecodeRuneInString(text[pos:])
		after = isWordRune(r)
	}
	return before != after
}

// boundedPattern finds the first alternative that both starts and ends on a
// Unicode word boundary. RE2's \b only knows ASCII word characters, which
// would split "0.1μF" between μ and F.
type boundedPattern struct {
	alternatives []*regexp.Regexp
}

func newBoundedPattern(flags string, alternatives ...string) boundedPattern {
	compiled := make([]*regexp.Regexp, 0, len(alternatives))
	for _, alt := range alternatives {
		compiled = append(compiled, regexp.MustCompile(`^`+flags+`(?:`+alt+`)`))
	}
	return boundedPattern{alternatives: compiled}
}

// find returns the leftmost bounded match. Alternatives are tried in order at
// each position.
func (p boundedPattern) find(text string) (string, bool) {
	for pos := 0; pos < len(text); {
		if isWordBoundary(text, pos) {
			for _, re := range p.alternatives {
				loc := re.FindStringIndex(text[pos:])
				if loc != nil && isWordBoundary(text, pos+loc[1]) {
					return text[pos : pos+loc[1]], true
				}
			}
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return "", false
}

// words splits text into maximal runs of word runes
func words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
}

// firstWholeWord returns the first word matched in full by re
func firstWholeWord(text string, re *regexp.Regexp) (string, bool) {
	for _, w := range words(text) {
		if re.MatchString(w) {
			return w, true
		}
	}
	return "", false
}
