package latexbuilder

import "regexp"

// lengthPattern is the normative LaTeX length regex from spec §6, compiled
// once as a process-wide constant per Design Notes §9.
var lengthPattern = regexp.MustCompile(`^-?[0-9]*(\.[0-9]+)?(pt|mm|cm|ex|em|bp|dd|pc|in)`)

// rsweaveBeginPattern matches the R-Sweave chunk header `<<...>>=`.
var rsweaveBeginPattern = regexp.MustCompile(`^<<[^>]*>>=`)

// handleOpenBrace implements the '{' dispatch case: a brace-delimited LaTeX
// length is consumed whole as markup; otherwise the current mode is pushed
// (bookkeeping for the matching '}') and '{' is emitted as markup.
func (b *Builder) handleOpenBrace() {
	if end, ok := b.matchBracedLength('{', '}'); ok {
		b.emitMarkup(b.code[b.pos:end])
		b.pos = end
		b.isMathCharTrivial = true
		return
	}
	b.modes.push(b.modes.current())
	b.emitMarkup(b.code[b.pos : b.pos+1])
	b.pos++
	b.isMathCharTrivial = true
}

// handleOpenBracket implements the '[' dispatch case: same length policy as
// handleOpenBrace, but for bracket-delimited lengths (e.g. optional
// argument lengths for \hspace*[...]).
func (b *Builder) handleOpenBracket() {
	if end, ok := b.matchBracedLength('[', ']'); ok {
		b.emitMarkup(b.code[b.pos:end])
		b.pos = end
		b.isMathCharTrivial = true
		return
	}
	b.handleDefaultChar()
}

// matchBracedLength checks whether code[pos+1:] up to a matching close
// delimiter is exactly a LaTeX length, per the normative regex in spec §6.
func (b *Builder) matchBracedLength(open, close byte) (int, bool) {
	if b.pos >= len(b.code) || b.code[b.pos] != open {
		return 0, false
	}
	closeIdx := -1
	for i := b.pos + 1; i < len(b.code); i++ {
		if b.code[i] == close {
			closeIdx = i
			break
		}
		if b.code[i] == open {
			return 0, false
		}
	}
	if closeIdx < 0 {
		return 0, false
	}
	inner := b.code[b.pos+1 : closeIdx]
	if lengthPattern.FindString(inner) != inner {
		return 0, false
	}
	return closeIdx + 1, true
}

// handleCloseBrace implements the '}' dispatch case, including Heading's
// closing-period synthesis and the math-vowel/emptiness bookkeeping.
func (b *Builder) handleCloseBrace() {
	interp := ""
	wasMode := b.modes.current()
	if wasMode == Heading && !b.lastPunctuation {
		interp = "."
	}
	b.modes.pop()
	b.emitMarkupInterpret(b.code[b.pos:b.pos+1], interp)
	b.pos++
	b.canInsertSpaceBeforeDummy = true
	if wasMode.IsMath() && !b.modes.current().IsMath() {
		b.isMathEmpty = true
	}
	b.isMathCharTrivial = true
}

// handleComment implements the '%' dispatch case: consume to end of line
// plus any leading whitespace of the next line; a comment spanning two
// blank lines preserves the paragraph break.
func (b *Builder) handleComment() {
	start := b.pos
	i := start
	for i < len(b.code) && b.code[i] != '\n' {
		i++
	}
	blankLines := 0
	if i < len(b.code) {
		i++ // consume the newline itself
		for i < len(b.code) {
			lineStart := i
			for i < len(b.code) && (b.code[i] == ' ' || b.code[i] == '\t') {
				i++
			}
			if i < len(b.code) && b.code[i] == '\n' {
				blankLines++
				i++
				continue
			}
			i = lineStart
			break
		}
	}
	interp := ""
	if blankLines >= 2 {
		interp = "\n\n"
	}
	b.emitMarkupInterpret(b.code[start:i], interp)
	b.pos = i
	b.isMathCharTrivial = true
}

// handleWhitespace implements the ' ' '\t' '\n' '\r' dispatch case:
// consumes maximal whitespace (and a trailing inline comment, if any), and
// in text mode normalizes it to a paragraph break, a single space, or
// nothing if already spaced.
func (b *Builder) handleWhitespace() {
	start := b.pos
	i := start
	newlineCount := 0
	for i < len(b.code) && isWhitespaceByte(b.code[i]) {
		if b.code[i] == '\n' {
			newlineCount++
		}
		i++
	}
	if i < len(b.code) && b.code[i] == '%' {
		saved := b.pos
		b.pos = i
		b.handleComment()
		i = b.pos
		b.pos = saved
	}

	mode := b.modes.current()
	interp := ""
	if mode.IsTextMode() {
		switch {
		case newlineCount >= 2:
			interp = "\n\n"
		case b.lastSpace:
			interp = ""
		default:
			interp = " "
		}
	}
	b.emitMarkupInterpret(b.code[start:i], interp)
	b.pos = i
	b.isMathCharTrivial = true
}

func isWhitespaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// handleTilde implements the '~' (non-breaking space) dispatch case.
func (b *Builder) handleTilde() {
	interp := ""
	if b.modes.current().IsTextMode() && !b.lastSpace {
		interp = "\u00a0"
	}
	b.emitMarkupInterpret(b.code[b.pos:b.pos+1], interp)
	b.pos++
}

// handleAmpersand consumes '&' (table column separator) as whitespace-like
// markup for dummy-spacing purposes.
func (b *Builder) handleAmpersand() {
	b.emitMarkup(b.code[b.pos : b.pos+1])
	b.pos++
	b.dummyLastSpace = true
}

// smartQuoteReplacements is checked longest-pattern-first (spec §6).
var smartQuoteReplacements = []struct {
	pattern string
	replace string
}{
	{"``", "“"},
	{"''", "”"},
	{`"'`, "“"},
	{"\"`", "„"},
	{`"=`, "-"},
	{`"~`, "-"},
	{`"-`, ""},
	{`""`, ""},
	{`"|`, ""},
}

// handleQuoteOrDash handles the '`' '\'' '"' smart-quote conversions and the
// '-' em/en-dash conversions, both text-mode only; anything unmatched falls
// through as ordinary text (spec §4.3.2, §9 Open Question (c)).
func (b *Builder) handleQuoteOrDash() {
	if !b.modes.current().IsTextMode() {
		b.emitMathChar(b.code[b.pos])
		b.pos++
		return
	}

	c := b.code[b.pos]
	if c == '-' {
		if hasPrefixAt(b.code, b.pos, "---") {
			b.emitMarkupInterpret(b.code[b.pos:b.pos+3], "—")
			b.pos += 3
			return
		}
		if hasPrefixAt(b.code, b.pos, "--") {
			b.emitMarkupInterpret(b.code[b.pos:b.pos+2], "–")
			b.pos += 2
			return
		}
		b.emitText(b.code[b.pos : b.pos+1])
		b.pos++
		return
	}

	for _, rep := range smartQuoteReplacements {
		if hasPrefixAt(b.code, b.pos, rep.pattern) {
			b.emitMarkupInterpret(b.code[b.pos:b.pos+len(rep.pattern)], rep.replace)
			b.pos += len(rep.pattern)
			return
		}
	}
	b.emitText(b.code[b.pos : b.pos+1])
	b.pos++
}

func hasPrefixAt(s string, pos int, prefix string) bool {
	if pos+len(prefix) > len(s) {
		return false
	}
	return s[pos:pos+len(prefix)] == prefix
}

// handleRsweaveBegin implements the '<' dispatch case: an R-Sweave chunk
// header `<<...>>=` pushes Rsweave mode; anything else falls through as
// ordinary text.
func (b *Builder) handleRsweaveBegin() bool {
	match := rsweaveBeginPattern.FindString(b.code[b.pos:])
	if match == "" {
		return false
	}
	b.modes.push(Rsweave)
	b.emitMarkup(match)
	b.pos += len(match)
	return true
}

// handleDefaultChar handles a single default character in a context where
// only one byte's worth of decision has already been made (the '[' and '<'
// fallbacks): plaintext in text mode, opaque markup (with vowel-state
// inference) in math mode.
func (b *Builder) handleDefaultChar() {
	c := b.code[b.pos]
	if b.modes.current().IsTextMode() {
		b.emitText(b.code[b.pos : b.pos+1])
	} else {
		b.emitMathChar(c)
	}
	b.pos++
}

// handleTextRun is stepNormal's default dispatch case: it consumes a
// maximal run of consecutive default characters in one go, so a plain run
// of prose becomes a single Text segment rather than one per byte (spec §8
// invariant 7 requires exactly this for a source of non-special text).
func (b *Builder) handleTextRun() {
	start := b.pos
	if b.modes.current().IsTextMode() {
		for b.pos < len(b.code) && isDefaultChar(b.code[b.pos]) {
			b.pos++
		}
		b.emitText(b.code[start:b.pos])
		return
	}

	for b.pos < len(b.code) && isDefaultChar(b.code[b.pos]) {
		b.observeMathChar(b.code[b.pos])
		b.pos++
	}
	b.emitMarkup(b.code[start:b.pos])
}

// isDefaultChar reports whether c is handled by stepNormal's default case,
// i.e. none of the dispatch table's special characters.
func isDefaultChar(c byte) bool {
	switch c {
	case '\\', '{', '}', '$', '%', ' ', '\t', '\n', '\r', '~', '&', '`', '\'', '"', '-', '[', '<':
		return false
	}
	return true
}

// emitMathChar appends one math-mode character as markup, updating the
// math-vowel state the first time a letter appears.
func (b *Builder) emitMathChar(c byte) {
	b.emitMarkup(string(c))
	b.observeMathChar(c)
}
