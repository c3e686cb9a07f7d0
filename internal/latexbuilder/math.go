package latexbuilder

import "github.com/ltex-go/annotate/internal/dummy"

// handleDollar dispatches a '$' or '$$' delimiter: closes the matching math
// mode if the scanner is currently inside one, otherwise opens it (spec
// §4.3.2, the '$' dispatch case).
func (b *Builder) handleDollar() {
	isDisplay := b.pos+1 < len(b.code) && b.code[b.pos+1] == '$'
	tokenLen := 1
	target := InlineMath
	if isDisplay {
		tokenLen = 2
		target = DisplayMath
	}
	raw := b.code[b.pos : b.pos+tokenLen]

	if b.modes.current() == target {
		b.modes.pop()
		interp := b.generateMathDummy(target)
		b.emitMarkupInterpret(raw, interp)
	} else {
		b.enterMath(target)
		b.emitMarkup(raw)
	}
	b.pos += tokenLen
}

// enterMath pushes a math mode and resets the per-block tracking state
// (spec §3: math-vowel state and is_math_empty are reset on entry to math).
// The delimiter that opens math is itself flagged trivial so the freshly set
// is_math_empty survives the end-of-iteration clear in AddCode and a
// genuinely empty block (e.g. "\(\)") is still empty at close time.
func (b *Builder) enterMath(mode Mode) {
	b.modes.push(mode)
	b.isMathEmpty = true
	b.mathVowel = vowelUndecided
	b.canInsertSpaceBeforeDummy = !b.lastSpace
	b.isMathCharTrivial = true
}

// exitMathTo pops back out of math (used by \) \] and \end{MATHENV}) and
// returns the generated dummy text for the closed block.
func (b *Builder) exitMathTo(closedMode Mode) string {
	b.modes.pop()
	return b.generateMathDummy(closedMode)
}

// generateMathDummy implements spec §4.3.4: on math close, synthesize the
// dummy token (or nothing/a bare space for an empty block), accounting for
// whether the surrounding prose is already spaced.
func (b *Builder) generateMathDummy(closedMode Mode) string {
	defer func() {
		b.dummyLastSpace = false
		b.dummyLastPunctuation = false
		b.mathVowel = vowelUndecided
	}()

	if b.isMathEmpty {
		if closedMode == DisplayMath && !b.dummyLastSpace {
			return " "
		}
		return ""
	}

	word := dummy.Generate(b.languageCode(), b.nextDummyIndex(), b.mathVowel == vowelIsVowel)

	if closedMode == DisplayMath {
		leading := ""
		if !b.dummyLastSpace {
			leading = " "
		}
		return leading + word + "." + " "
	}

	result := word
	if b.dummyLastPunctuation {
		result += "."
	}
	if b.dummyLastSpace {
		result += " "
	}
	return result
}

func (b *Builder) nextDummyIndex() int {
	i := b.dummyCounter
	b.dummyCounter++
	return i
}

func (b *Builder) languageCode() string {
	if b.settings != nil && b.settings.LanguageShortCode != "" {
		return b.settings.LanguageShortCode
	}
	return "en"
}

// observeMathChar updates the math-vowel state the first time a non-trivial
// character appears inside math, per spec §3: \ell forces vowel, font-change
// commands leave it undecided, generic commands force consonant, and
// otherwise the first letter's vowel class decides.
func (b *Builder) observeMathChar(c byte) {
	if b.mathVowel != vowelUndecided {
		return
	}
	if !isLetter(c) {
		return
	}
	if isBroadVowel(c) {
		b.mathVowel = vowelIsVowel
	} else {
		b.mathVowel = vowelIsConsonant
	}
}

// broadVowels is the deliberately broadened "vowel" set from spec §3:
// letters pronounced starting with a vowel sound, conflating letter name
// with initial sound (Open Question (a), preserved verbatim).
var broadVowels = map[byte]bool{
	'a': true, 'e': true, 'f': true, 'h': true, 'i': true,
	'l': true, 'm': true, 'n': true, 'o': true, 'r': true,
	's': true, 'x': true,
}

func isBroadVowel(c byte) bool {
	return broadVowels[lower(c)]
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
