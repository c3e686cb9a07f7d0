// Package accent is the normative accent-composition table for LaTeX accent
// commands: grave, acute, circumflex, tilde, diaeresis, macron, dot-above,
// cedilla, and ring applied to the letters A/E/I/N/O/U/Y (and the dotless
// \i, which shares the I row).
package accent

import "unicode"

// Kind is one of the nine accent commands the LaTeX builder recognizes.
type Kind int

const (
	Grave Kind = iota
	Acute
	Circumflex
	Tilde
	Diaeresis
	Macron
	DotAbove
	Cedilla
	Ring
)

// KindFromCommandChar maps the character following the backslash in an
// accent command (`` ` `` `'` `^` `~` `"` `=` `.` `c` `r`) to its Kind.
func KindFromCommandChar(c byte) (Kind, bool) {
	switch c {
	case '`':
		return Grave, true
	case '\'':
		return Acute, true
	case '^':
		return Circumflex, true
	case '~':
		return Tilde, true
	case '"':
		return Diaeresis, true
	case '=':
		return Macron, true
	case '.':
		return DotAbove, true
	case 'c':
		return Cedilla, true
	case 'r':
		return Ring, true
	}
	return 0, false
}

// table[kind][upperLetter] holds the composed uppercase codepoint. Letters
// absent from a row ("–" in the spec's normative table) compose to nothing.
var table = map[Kind]map[byte]rune{
	Grave:      {'A': 0x00C0, 'E': 0x00C8, 'I': 0x00CC, 'O': 0x00D2, 'U': 0x00D9},
	Acute:      {'A': 0x00C1, 'E': 0x00C9, 'I': 0x00CD, 'O': 0x00D3, 'U': 0x00DA, 'Y': 0x00DD},
	Circumflex: {'A': 0x00C2, 'E': 0x00CA, 'I': 0x00CE, 'O': 0x00D4, 'U': 0x00DB, 'Y': 0x0176},
	Tilde:      {'A': 0x00C3, 'E': 0x1EBC, 'I': 0x0128, 'N': 0x00D1, 'O': 0x00D5, 'U': 0x0168},
	Diaeresis:  {'A': 0x00C4, 'E': 0x00CB, 'I': 0x00CF, 'O': 0x00D6, 'U': 0x00DC, 'Y': 0x0178},
	Macron:     {'A': 0x0100, 'E': 0x0112, 'I': 0x012A, 'O': 0x014C, 'U': 0x016A, 'Y': 0x0232},
	DotAbove:   {'A': 0x0226, 'E': 0x0116, 'I': 0x0130, 'O': 0x022E},
	Cedilla:    {'C': 0x00C7},
	Ring:       {'A': 0x00C5, 'U': 0x016E},
}

// Compose returns the composed codepoint for the given accent and base
// letter (upper or lower case). ok is false for unlisted combinations, per
// the spec's "unlisted combinations -> empty" rule.
func Compose(kind Kind, letter byte) (rune, bool) {
	upper := letter
	lower := letter >= 'a' && letter <= 'z'
	if lower {
		upper = letter - ('a' - 'A')
	}
	row, ok := table[kind]
	if !ok {
		return 0, false
	}
	r, ok := row[upper]
	if !ok {
		return 0, false
	}
	if lower {
		return unicode.ToLower(r), true
	}
	return r, true
}

// ComposeDotlessI composes an accent onto \i, the dotless-i variant, which
// shares the lowercase-I row per the spec.
func ComposeDotlessI(kind Kind) (rune, bool) {
	return Compose(kind, 'i')
}

// NationalLetter maps the single-letter national-letter commands
// (\AA \O \aa \ss \o) to their Unicode characters.
func NationalLetter(name string) (rune, bool) {
	switch name {
	case "AA":
		return 0x00C5, true
	case "O":
		return 0x00D8, true
	case "aa":
		return 0x00E5, true
	case "ss":
		return 0x00DF, true
	case "o":
		return 0x00F8, true
	}
	return 0, false
}
