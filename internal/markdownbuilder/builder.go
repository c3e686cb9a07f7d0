package markdownbuilder

import (
	"fmt"
	"html"
	"os"
	"strings"

	mdast "github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/ltex-go/annotate/internal/annotate"
	"github.com/ltex-go/annotate/internal/dummy"
	"github.com/ltex-go/annotate/internal/settings"
)

var isDebug bool

// SetDebug enables or disables debug logging to stderr for all builders in
// the process, matching the teacher's own SetDebug(bool) convention.
func SetDebug(debug bool) {
	isDebug = debug
}

func debugf(format string, args ...interface{}) {
	if isDebug {
		fmt.Fprintf(os.Stderr, "DEBUG: markdownbuilder: "+format+"\n", args...)
	}
}

const frontMatterDelim = "---"

// Builder is the stateful Markdown scanner. Like latexbuilder.Builder, it is
// not safe for concurrent use and must be driven to completion by a single
// AddCode call before reuse.
type Builder struct {
	settings *settings.Settings
	registry *Registry

	code         string
	cursor       int
	sink         *annotate.Sink
	dummyCounter int
}

// New returns a Markdown builder.
func New() *Builder {
	return &Builder{registry: NewRegistry()}
}

// SetSettings installs host-provided node-kind overrides and the dummy
// generator's target language.
func (b *Builder) SetSettings(s *settings.Settings) {
	b.settings = s
	b.registry = NewRegistry()
	b.registry.ApplySettings(s)
}

// AddCode strips a leading YAML front-matter block, parses the remainder
// with the MathJax-extended Markdown parser, and walks the resulting AST,
// per spec §4.4. gomarkdown's AST does not retain source byte offsets, so
// each leaf's span is reconstructed by locating its literal bytes from a
// running cursor; the gaps between located leaves are exactly the markdown
// syntax (`**`, `_`, `#`, fence markers, …) the classification rule says to
// swallow or newline-translate.
func (b *Builder) AddCode(src string) (*annotate.Sink, error) {
	b.code = src
	b.cursor = 0
	b.sink = annotate.NewSink()
	b.dummyCounter = 0

	b.stripFrontMatter()

	body := b.code[b.cursor:]
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.MathJax)
	doc := p.Parse([]byte(body))

	b.walk(doc, false)

	if b.cursor < len(b.code) {
		b.emitMarkup(b.code[b.cursor:])
	}

	return b.sink, nil
}

// stripFrontMatter consumes a `---` … `---` block at the very start of the
// document as markup, if present, before the AST is even parsed (spec §4.4).
func (b *Builder) stripFrontMatter() {
	if !strings.HasPrefix(b.code, frontMatterDelim) {
		return
	}
	rest := b.code[len(frontMatterDelim):]
	if !(strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r\n")) {
		return
	}
	closeIdx := strings.Index(rest, "\n"+frontMatterDelim)
	if closeIdx < 0 {
		return
	}
	end := len(frontMatterDelim) + closeIdx + 1 + len(frontMatterDelim)
	for end < len(b.code) && (b.code[end] == ' ' || b.code[end] == '\t') {
		end++
	}
	switch {
	case end < len(b.code) && b.code[end] == '\n':
		end++
	case end+1 < len(b.code) && b.code[end] == '\r' && b.code[end+1] == '\n':
		end += 2
	}
	debugf("stripped front matter, %d bytes", end)
	b.emitMarkup(b.code[:end])
}

func (b *Builder) emitMarkup(raw string) {
	b.sink.AddMarkup(raw)
	b.cursor += len(raw)
}

func (b *Builder) emitMarkupInterpret(raw, interp string) {
	if interp == "" {
		b.emitMarkup(raw)
		return
	}
	b.sink.AddMarkupInterpret(raw, interp)
	b.cursor += len(raw)
}

func (b *Builder) emitText(s string) {
	b.sink.AddText(s)
	b.cursor += len(s)
}

// locate finds literal in b.code starting no earlier than b.cursor,
// returning its absolute offset or -1.
func (b *Builder) locate(literal string) int {
	if literal == "" {
		return -1
	}
	rel := strings.Index(b.code[b.cursor:], literal)
	if rel < 0 {
		return -1
	}
	return b.cursor + rel
}

// fillGapTo attributes the source bytes between the current cursor and
// startIdx (the offset the next recognised leaf begins at) to markup. A
// gap that is pure whitespace containing a newline is interpreted as a
// paragraph-internal space or an inter-block newline (spec §4.4); anything
// else — formatting markers like `**`, `_`, `#`, fence delimiters — is
// swallowed with no interpretation.
func (b *Builder) fillGapTo(startIdx int, inParagraph bool) {
	if startIdx <= b.cursor {
		return
	}
	gap := b.code[b.cursor:startIdx]
	b.emitMarkupInterpret(gap, gapInterpretation(gap, inParagraph))
}

func gapInterpretation(gap string, inParagraph bool) string {
	if strings.TrimSpace(gap) != "" {
		return ""
	}
	if !strings.Contains(gap, "\n") {
		return ""
	}
	if inParagraph {
		return " "
	}
	return "\n"
}

// walk implements spec §4.4's per-node classification. inParagraph tracks
// whether the nearest block ancestor is a Paragraph, for gap-filling.
func (b *Builder) walk(node mdast.Node, inParagraph bool) {
	if node == nil {
		return
	}
	kind := kindOf(node)

	if kind == KindHTMLSpan || kind == KindHTMLBlock {
		if sig, ok := b.registry.Lookup(kind); ok && sig.action == settings.ActionIgnore {
			b.emitLeafAsMarkup(node)
			return
		}
		b.emitLeafAsHTMLEntity(node)
		return
	}

	if sig, ok := b.registry.Lookup(kind); ok {
		switch sig.action {
		case settings.ActionIgnore:
			b.emitSubtreeAsMarkup(node)
			return
		case settings.ActionDummy:
			b.emitSubtreeAsDummy(node, sig.plural)
			return
		}
	}

	if kind == KindText {
		b.emitLeafAsText(node, inParagraph)
		return
	}

	childInParagraph := inParagraph || kind == KindParagraph
	for _, child := range node.GetChildren() {
		b.walk(child, childInParagraph)
	}
}

func (b *Builder) emitLeafAsText(node mdast.Node, inParagraph bool) {
	lit, ok := leafLiteral(node)
	if !ok || len(lit) == 0 {
		return
	}
	idx := b.locate(string(lit))
	if idx < 0 {
		debugf("could not locate text leaf %q after cursor %d", string(lit), b.cursor)
		return
	}
	b.fillGapTo(idx, inParagraph)
	b.emitText(string(lit))
}

func (b *Builder) emitLeafAsMarkup(node mdast.Node) {
	lit, ok := leafLiteral(node)
	if !ok {
		return
	}
	idx := b.locate(string(lit))
	if idx < 0 {
		return
	}
	b.fillGapTo(idx, false)
	b.emitMarkup(string(lit))
}

// emitLeafAsHTMLEntity implements spec §4.4's HTML-entity kind: the raw HTML
// span's decoded form becomes interpret_as.
func (b *Builder) emitLeafAsHTMLEntity(node mdast.Node) {
	lit, ok := leafLiteral(node)
	if !ok {
		return
	}
	idx := b.locate(string(lit))
	if idx < 0 {
		return
	}
	b.fillGapTo(idx, false)
	decoded := html.UnescapeString(string(lit))
	b.emitMarkupInterpret(string(lit), decoded)
}

func (b *Builder) emitSubtreeAsMarkup(node mdast.Node) {
	start, end, ok := b.subtreeSpan(node)
	if !ok {
		return
	}
	b.fillGapTo(start, false)
	b.emitMarkup(b.code[start:end])
}

func (b *Builder) emitSubtreeAsDummy(node mdast.Node, plural bool) {
	start, end, ok := b.subtreeSpan(node)
	if !ok {
		return
	}
	b.fillGapTo(start, false)
	word := b.dummyWord(plural)
	b.emitMarkupInterpret(b.code[start:end], word)
}

// subtreeSpan locates the source range a node's subtree occupies: directly
// from its own literal if it is a leaf, or by locating the first and last
// descendant leaf literal in document order otherwise.
func (b *Builder) subtreeSpan(node mdast.Node) (start, end int, ok bool) {
	if lit, has := leafLiteral(node); has {
		idx := b.locate(string(lit))
		if idx < 0 {
			return 0, 0, false
		}
		return idx, idx + len(lit), true
	}

	literals := collectLeafLiterals(node)
	if len(literals) == 0 {
		return 0, 0, false
	}
	cursor := b.cursor
	start, end = -1, -1
	for _, lit := range literals {
		rel := strings.Index(b.code[cursor:], lit)
		if rel < 0 {
			continue
		}
		idx := cursor + rel
		if start < 0 {
			start = idx
		}
		end = idx + len(lit)
		cursor = end
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, end, true
}

func collectLeafLiterals(node mdast.Node) []string {
	var out []string
	if lit, has := leafLiteral(node); has && len(lit) > 0 {
		out = append(out, string(lit))
	}
	for _, child := range node.GetChildren() {
		out = append(out, collectLeafLiterals(child)...)
	}
	return out
}

func (b *Builder) dummyWord(plural bool) string {
	idx := b.dummyCounter
	b.dummyCounter++
	lang := "en"
	if b.settings != nil && b.settings.LanguageShortCode != "" {
		lang = b.settings.LanguageShortCode
	}
	if plural {
		return dummy.GeneratePlural(lang, idx, false)
	}
	return dummy.Generate(lang, idx, false)
}
