package latexbuilder

import (
	"regexp"
	"strings"

	"github.com/ltex-go/annotate/internal/accent"
	"github.com/ltex-go/annotate/internal/dummy"
	"github.com/ltex-go/annotate/internal/settings"
	"github.com/ltex-go/annotate/internal/signature"
)

// escapedSpecials are the backslash-escaped special characters (spec
// §4.3.3 item 2): markup whose interpretation is the literal second char.
var escapedSpecials = map[byte]bool{'$': true, '%': true, '&': true}

// spacingCommands are the spacing/break commands of spec §4.3.3 item 6.
var spacingCommands = map[string]bool{
	" ": true, ",": true, ";": true, `\`: true,
	"hfill": true, "quad": true, "qquad": true, "newline": true,
	"hspace": true, "hspace*": true,
}

// abbreviationMacros map to their text-mode expansions (spec §4.3.3 item 7).
var abbreviationMacros = map[string]string{
	"dots": "...", "eg": "e.g.", "egc": "e.g.,",
	"euro": "€", "ie": "i.e.", "iec": "i.e.,",
}

// sectioningCommands are the heading commands of spec §4.3.3 item 9.
var sectioningCommands = map[string]bool{
	"part": true, "chapter": true, "section": true, "subsection": true,
	"subsubsection": true, "paragraph": true, "subparagraph": true,
}

// nationalLetterCommands are the single-letter commands of item 4.
var nationalLetterCommands = map[string]bool{
	"AA": true, "O": true, "aa": true, "ss": true, "o": true,
}

// accentLetterPattern matches the letter (or braced letter, or \i) that
// follows an accent command, per spec §4.3.3 item 5.
var accentLetterPattern = regexp.MustCompile(`^(\{[A-Za-z]\}|\{\\i\}|\\i|[A-Za-z])`)

var endPatternCache = map[string]*regexp.Regexp{}

func endPatternFor(env string) *regexp.Regexp {
	if re, ok := endPatternCache[env]; ok {
		return re
	}
	re := regexp.MustCompile(`^\\end\{` + regexp.QuoteMeta(env) + `\}`)
	endPatternCache[env] = re
	return re
}

// scanCommandName reads the command name starting right after the
// backslash at b.code[pos]: a single non-letter, or a maximal run of
// letters/@ optionally starred.
func scanCommandName(code string, pos int) (name string, end int) {
	p := pos + 1
	if p >= len(code) {
		return "", p
	}
	c := code[p]
	if isLetter(c) || c == '@' {
		start := p
		for p < len(code) && (isLetter(code[p]) || code[p] == '@') {
			p++
		}
		name = code[start:p]
		if p < len(code) && code[p] == '*' {
			name += "*"
			p++
		}
		return name, p
	}
	return string(c), p + 1
}

// handleCommand implements the full command scanner of spec §4.3.3.
func (b *Builder) handleCommand() {
	start := b.pos
	name, afterName := scanCommandName(b.code, start)
	if name == "" {
		b.emitMarkup(b.code[start : start+1])
		b.pos = start + 1
		return
	}

	switch {
	case name == "begin" || name == "end":
		b.handleBeginEnd(name, start, afterName)
	case len(name) == 1 && escapedSpecials[name[0]]:
		b.emitMarkupInterpret(b.code[start:afterName], name)
		b.pos = afterName
	case name == "[" || name == "(":
		target := InlineMath
		if name == "[" {
			target = DisplayMath
		}
		b.enterMath(target)
		b.emitMarkup(b.code[start:afterName])
		b.pos = afterName
	case name == "]" || name == ")":
		target := InlineMath
		if name == "]" {
			target = DisplayMath
		}
		interp := b.exitMathTo(target)
		b.emitMarkupInterpret(b.code[start:afterName], interp)
		b.pos = afterName
	case nationalLetterCommands[name]:
		r, ok := accent.NationalLetter(name)
		interp := ""
		if ok {
			interp = string(r)
		}
		b.emitMarkupInterpret(b.code[start:afterName], interp)
		b.pos = afterName
	case len(name) == 1 && isAccentChar(name[0]):
		b.handleAccent(name[0], start, afterName)
	case spacingCommands[name]:
		b.handleSpacingCommand(start, afterName)
	case abbreviationMacros[name] != "":
		b.handleAbbreviation(name, start, afterName)
	case name == "notag" || name == "qed":
		b.emitMarkup(b.code[start:afterName])
		b.pos = afterName
		b.preserveDummyLast = true
	case sectioningCommands[strings.TrimSuffix(name, "*")]:
		b.handleSectioning(start, afterName)
	case name == "text" || name == "intertext":
		b.handleTextCommand(start, afterName)
	case name == "verb" || name == "verb*":
		b.handleVerb(start, afterName)
	default:
		b.handleGenericCommand(name, start, afterName)
	}
}

func isAccentChar(c byte) bool {
	_, ok := accent.KindFromCommandChar(c)
	return ok
}

// handleBeginEnd implements spec §4.3.3 item 1.
func (b *Builder) handleBeginEnd(name string, start, afterName int) {
	env, afterEnv, ok := b.readBraceArgument(afterName)
	if !ok {
		b.emitMarkup(b.code[start:afterName])
		b.pos = afterName
		return
	}

	if signature.IsMathEnvironment(env) {
		if name == "begin" {
			target := DisplayMath
			if signature.IsInlineMathEnvironment(env) {
				target = InlineMath
			}
			b.enterMath(target)
			b.emitMarkup(b.code[start:afterEnv])
			b.pos = afterEnv
			return
		}
		target := DisplayMath
		if signature.IsInlineMathEnvironment(env) {
			target = InlineMath
		}
		interp := b.exitMathTo(target)
		b.emitMarkupInterpret(b.code[start:afterEnv], interp)
		b.pos = afterEnv
		return
	}

	if name == "begin" {
		sig, hasSig := b.registry.LookupEnvironment(env)
		if hasSig && sig.Action == settings.ActionIgnore {
			end := afterEnv
			end = b.consumeTrailingArgs(env, end)
			b.modes.pushIgnore(endPatternFor(env))
			b.emitMarkup(b.code[start:end])
			b.pos = end
			return
		}
		end := afterEnv
		end = b.consumeTrailingArgs(env, end)
		b.modes.push(b.modes.current())
		b.emitMarkup(b.code[start:end])
		b.pos = end
		return
	}

	b.modes.pop()
	b.emitMarkup(b.code[start:afterEnv])
	b.pos = afterEnv
}

// consumeTrailingArgs consumes brace/bracket argument groups (and, for
// textblock/textblock*, parenthesised groups) immediately following a
// \begin{ENV}, per spec §4.3.3 item 1.
func (b *Builder) consumeTrailingArgs(env string, pos int) int {
	for pos < len(b.code) {
		switch b.code[pos] {
		case '{':
			if end, ok := matchGroup(b.code, pos, '{', '}'); ok {
				pos = end
				continue
			}
		case '[':
			if end, ok := matchGroup(b.code, pos, '[', ']'); ok {
				pos = end
				continue
			}
		case '(':
			if env == "textblock" || env == "textblock*" {
				if end, ok := matchGroup(b.code, pos, '(', ')'); ok {
					pos = end
					continue
				}
			}
		}
		break
	}
	return pos
}

func matchGroup(code string, pos int, open, close byte) (int, bool) {
	if pos >= len(code) || code[pos] != open {
		return 0, false
	}
	depth := 0
	for i := pos; i < len(code); i++ {
		switch code[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// readBraceArgument reads a `{...}` argument starting at pos, returning its
// inner content.
func (b *Builder) readBraceArgument(pos int) (content string, end int, ok bool) {
	endPos, matched := matchGroup(b.code, pos, '{', '}')
	if !matched {
		return "", pos, false
	}
	return b.code[pos+1 : endPos-1], endPos, true
}

// handleAccent implements spec §4.3.3 item 5.
func (b *Builder) handleAccent(commandChar byte, start, afterName int) {
	kind, _ := accent.KindFromCommandChar(commandChar)
	match := accentLetterPattern.FindString(b.code[afterName:])
	if match == "" {
		b.emitMarkup(b.code[start:afterName])
		b.pos = afterName
		return
	}
	end := afterName + len(match)
	var letter byte
	dotlessI := false
	switch {
	case match == `\i`:
		dotlessI = true
	case strings.HasPrefix(match, "{\\i"):
		dotlessI = true
	case len(match) == 3 && match[0] == '{':
		letter = match[1]
	default:
		letter = match[0]
	}
	var r rune
	var composed bool
	if dotlessI {
		r, composed = accent.ComposeDotlessI(kind)
	} else {
		r, composed = accent.Compose(kind, letter)
	}
	interp := ""
	if composed {
		interp = string(r)
	}
	b.emitMarkupInterpret(b.code[start:end], interp)
	b.pos = end
}

// handleSpacingCommand implements spec §4.3.3 item 6.
func (b *Builder) handleSpacingCommand(start, afterName int) {
	name := b.code[start+1 : afterName]
	raw := b.code[start:afterName]
	end := afterName

	if name == `\` {
		// line break: no further argument.
	} else if name == "hspace" || name == "hspace*" {
		if arg, argEnd, ok := b.readBraceArgument(afterName); ok {
			_ = arg
			end = argEnd
			raw = b.code[start:end]
		}
	}

	if b.modes.current().IsMath() {
		if b.canInsertSpaceBeforeDummy && b.isMathEmpty {
			b.emitMarkupInterpret(raw, " ")
		} else {
			b.emitMarkup(raw)
		}
		b.dummyLastSpace = true
		b.preserveDummyLast = true
		b.pos = end
		return
	}

	interp := ""
	if name == "," {
		interp = "\u202f"
	} else if !b.lastSpace {
		interp = " "
	}
	b.emitMarkupInterpret(raw, interp)
	b.pos = end
}

// handleAbbreviation implements spec §4.3.3 item 7.
func (b *Builder) handleAbbreviation(name string, start, afterName int) {
	raw := b.code[start:afterName]
	if b.modes.current().IsTextMode() {
		b.emitMarkupInterpret(raw, abbreviationMacros[name])
	} else {
		b.emitMarkup(raw)
	}
	b.pos = afterName
}

// handleSectioning implements spec §4.3.3 item 9.
func (b *Builder) handleSectioning(start, afterName int) {
	end := afterName
	if end < len(b.code) && b.code[end] == '[' {
		if bracketEnd, ok := matchGroup(b.code, end, '[', ']'); ok {
			end = bracketEnd
		}
	}
	b.emitMarkup(b.code[start:end])
	b.pos = end
	b.modes.push(Heading)
	if b.pos < len(b.code) && b.code[b.pos] == '{' {
		b.emitMarkup(b.code[b.pos : b.pos+1])
		b.pos++
	}
}

// handleTextCommand implements spec §4.3.3 item 10.
func (b *Builder) handleTextCommand(start, afterName int) {
	wasMath := b.modes.current().IsMath()
	if wasMath && afterName < len(b.code) && b.code[afterName] == '{' {
		interp := b.exitMathTo(b.modes.current())
		b.modes.push(InlineText)
		b.emitMarkupInterpret(b.code[start:afterName+1], interp)
		b.pos = afterName + 1
		return
	}
	b.modes.push(InlineText)
	b.emitMarkup(b.code[start:afterName])
	b.pos = afterName
}

// handleVerb implements spec §4.3.3 item 11: a verbatim literal delimited
// by an arbitrary matched character, replaced whole by a dummy.
func (b *Builder) handleVerb(start, afterName int) {
	if afterName >= len(b.code) {
		b.emitMarkup(b.code[start:afterName])
		b.pos = afterName
		return
	}
	delim := b.code[afterName]
	closeIdx := strings.IndexByte(b.code[afterName+1:], delim)
	if closeIdx < 0 {
		b.emitMarkup(b.code[start:afterName])
		b.pos = afterName
		return
	}
	end := afterName + 1 + closeIdx + 1
	word := b.generateStandaloneDummy()
	b.emitMarkupInterpret(b.code[start:end], word)
	b.pos = end
}

// generateStandaloneDummy produces a dummy token outside of a math block
// (used by \verb), always in its consonant-initial singular form; the
// surrounding spacing is left to the neighbouring whitespace handling.
func (b *Builder) generateStandaloneDummy() string {
	return dummyWordFor(b, false)
}

func dummyWordFor(b *Builder, plural bool) string {
	if plural {
		return dummy.GeneratePlural(b.languageCode(), b.nextDummyIndex(), false)
	}
	return dummy.Generate(b.languageCode(), b.nextDummyIndex(), false)
}

// handleGenericCommand implements spec §4.3.3 item 12: longest-match
// signature lookup, with Default/no-match falling back to emitting just
// the command word.
func (b *Builder) handleGenericCommand(name string, start, afterName int) {
	sig, matchLen, ok := b.registry.LookupCommand(b.code, name, afterName)
	if ok {
		end := afterName + matchLen
		switch sig.Action {
		case settings.ActionIgnore:
			b.emitMarkup(b.code[start:end])
			b.pos = end
			return
		case settings.ActionDummy:
			word := dummyWordFor(b, sig.Plural)
			b.emitMarkupInterpret(b.code[start:end], word)
			b.pos = end
			return
		default:
			b.emitMarkup(b.code[start:afterName])
			b.pos = afterName
			b.observeGenericCommandVowel(name)
			return
		}
	}
	b.emitMarkup(b.code[start:afterName])
	b.pos = afterName
	b.observeGenericCommandVowel(name)
}

// observeGenericCommandVowel implements the command-word vowel rule from
// spec §3: \ell forces vowel, font-change commands leave it undecided,
// other commands force consonant — only while inside math.
func (b *Builder) observeGenericCommandVowel(name string) {
	if !b.modes.current().IsMath() || b.mathVowel != vowelUndecided {
		return
	}
	switch {
	case name == "ell":
		b.mathVowel = vowelIsVowel
	case signature.IsFontChangeCommand(name):
		// leave undecided
	default:
		b.mathVowel = vowelIsConsonant
	}
}
