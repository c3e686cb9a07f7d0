// Package latexbuilder implements the LaTeX (and R-Sweave) annotated-text
// builder: a hand-written, position-driven scanner that classifies source
// bytes into prose and markup, tracks a mode stack, and synthesizes dummy
// tokens for math and opaque commands, per spec §4.3.
package latexbuilder

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/ltex-go/annotate/internal/annotate"
	"github.com/ltex-go/annotate/internal/settings"
	"github.com/ltex-go/annotate/internal/signature"
)

// Dialect selects between the two code_language_id values the external
// interface accepts.
type Dialect int

const (
	DialectLatex Dialect = iota
	DialectRsweave
)

var isDebug bool

// SetDebug enables or disables debug logging to stderr for all builders in
// the process, matching the teacher's own SetDebug(bool) convention.
func SetDebug(debug bool) {
	isDebug = debug
}

func debugf(format string, args ...interface{}) {
	if isDebug {
		fmt.Fprintf(os.Stderr, "DEBUG: latexbuilder: "+format+"\n", args...)
	}
}

// Builder is the stateful LaTeX/R-Sweave scanner. It is not safe for
// concurrent use and must be driven to completion by a single AddCode call
// before reuse (spec §5).
type Builder struct {
	dialect  Dialect
	settings *settings.Settings
	strict   bool
	registry *signature.Registry

	code  string
	pos   int
	sink  *annotate.Sink
	modes *modeStack

	dummyCounter int

	lastSpace       bool
	lastPunctuation bool

	dummyLastSpace       bool
	dummyLastPunctuation bool

	isMathEmpty               bool
	preserveDummyLast         bool
	canInsertSpaceBeforeDummy bool
	isMathCharTrivial         bool

	mathVowel vowelState
}

// New returns a builder for the given code_language_id ("latex" or
// "rsweave").
func New(codeLanguageID string) *Builder {
	dialect := DialectLatex
	if codeLanguageID == "rsweave" {
		dialect = DialectRsweave
	}
	return &Builder{
		dialect:  dialect,
		registry: signature.NewRegistry(),
		strict:   true,
	}
}

// SetSettings installs host-provided command/environment overrides and the
// dummy generator's target language.
func (b *Builder) SetSettings(s *settings.Settings) {
	b.settings = s
	b.registry = signature.NewRegistry()
	b.registry.ApplySettings(s)
}

// SetStrictMode controls whether a no-progress iteration is fatal (true) or
// logged-and-skipped (false), per spec §7.
func (b *Builder) SetStrictMode(strict bool) {
	b.strict = strict
}

// AddCode scans src to completion, returning the populated sink.
func (b *Builder) AddCode(src string) (*annotate.Sink, error) {
	b.code = src
	b.pos = 0
	b.sink = annotate.NewSink()
	b.modes = newModeStack()
	b.dummyCounter = 0
	b.lastSpace = false
	b.lastPunctuation = false
	b.dummyLastSpace = false
	b.dummyLastPunctuation = false
	b.isMathEmpty = false
	b.preserveDummyLast = false
	b.canInsertSpaceBeforeDummy = false
	b.isMathCharTrivial = false
	b.mathVowel = vowelUndecided

	for b.pos < len(b.code) {
		lastPos := b.pos
		b.isMathCharTrivial = false

		b.step()

		if b.pos == lastPos {
			if b.strict {
				return b.sink, b.noProgressError()
			}
			debugf("no progress at pos %d, skipping one byte", b.pos)
			b.emitMarkup(b.code[b.pos : b.pos+1])
			b.pos++
		}

		if !b.isMathCharTrivial {
			b.canInsertSpaceBeforeDummy = false
			b.isMathEmpty = false
		}
	}

	return b.sink, nil
}

// step runs one iteration of the scan loop: dispatch on the current mode,
// per spec §4.3.2.
func (b *Builder) step() {
	switch b.modes.current() {
	case IgnoreEnvironment:
		b.stepIgnoreEnvironment()
	case Rsweave:
		b.stepRsweave()
	default:
		b.stepNormal()
	}
}

// stepIgnoreEnvironment implements spec §4.3.2 dispatch 1: try to match the
// armed `\end{ENV}` pattern; otherwise emit one byte as markup.
func (b *Builder) stepIgnoreEnvironment() {
	pattern := b.modes.currentEndPattern()
	if pattern != nil {
		if loc := pattern.FindStringIndex(b.code[b.pos:]); loc != nil && loc[0] == 0 {
			end := b.pos + loc[1]
			b.modes.pop()
			b.emitMarkup(b.code[b.pos:end])
			b.pos = end
			return
		}
	}
	b.emitMarkup(b.code[b.pos : b.pos+1])
	b.pos++
}

// stepRsweave implements spec §4.3.2 dispatch 2: same shape, pattern "@".
func (b *Builder) stepRsweave() {
	if b.code[b.pos] == '@' {
		b.modes.pop()
		b.emitMarkup("@")
		b.pos++
		return
	}
	b.emitMarkup(b.code[b.pos : b.pos+1])
	b.pos++
}

// stepNormal implements spec §4.3.2 dispatch 3: character dispatch.
func (b *Builder) stepNormal() {
	c := b.code[b.pos]
	switch c {
	case '\\':
		b.handleCommand()
	case '{':
		b.handleOpenBrace()
	case '}':
		b.handleCloseBrace()
	case '$':
		b.handleDollar()
	case '%':
		b.handleComment()
	case ' ', '\t', '\n', '\r':
		b.handleWhitespace()
	case '~':
		b.handleTilde()
	case '&':
		b.handleAmpersand()
	case '`', '\'', '"', '-':
		b.handleQuoteOrDash()
	case '[':
		b.handleOpenBracket()
	case '<':
		if !b.handleRsweaveBegin() {
			b.handleDefaultChar()
		}
	default:
		b.handleTextRun()
	}
}

// emitText appends plaintext s to the sink and updates spacing/punctuation
// tracking from its last rune.
func (b *Builder) emitText(s string) {
	b.sink.AddText(s)
	b.observeEmittedText(s)
}

// emitMarkup attributes raw's length to no plaintext, clearing the
// dummy-spacing trackers unless a one-shot preserve is pending.
func (b *Builder) emitMarkup(raw string) {
	b.sink.AddMarkup(raw)
	if b.preserveDummyLast {
		b.preserveDummyLast = false
		return
	}
	b.dummyLastSpace = false
	b.dummyLastPunctuation = false
}

// emitMarkupInterpret attributes raw's length to interp; an empty interp is
// equivalent to emitMarkup.
func (b *Builder) emitMarkupInterpret(raw, interp string) {
	if interp == "" {
		b.emitMarkup(raw)
		return
	}
	b.sink.AddMarkupInterpret(raw, interp)
	b.observeEmittedText(interp)
}

func (b *Builder) observeEmittedText(s string) {
	if s == "" {
		return
	}
	lastRune, _ := utf8.DecodeLastRuneInString(s)
	b.lastSpace = unicode.IsSpace(lastRune)
	b.lastPunctuation = isSentenceTerminator(lastRune)
	b.dummyLastSpace = b.lastSpace
	b.dummyLastPunctuation = b.lastPunctuation
}

func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
