package latexbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltex-go/annotate/internal/annotate"
)

// scan is the test harness shared by every case: run src through a fresh
// Builder and assert the invariants from spec §8 before returning the sink
// for scenario-specific assertions.
func scan(t *testing.T, dialect, src string) *annotate.Sink {
	t.Helper()
	b := New(dialect)
	sink, err := b.AddCode(src)
	require.NoError(t, err)
	assertSourceConservation(t, src, sink)
	return sink
}

func assertSourceConservation(t *testing.T, src string, sink *annotate.Sink) {
	t.Helper()
	assert.Equal(t, len(src), sink.SourceLen(), "source conservation: total segment length must equal len(src)")

	pos := 0
	for _, seg := range sink.Segments() {
		assert.Equal(t, pos, seg.SourceStart, "segments must be contiguous")
		assert.GreaterOrEqual(t, seg.SourceEnd, seg.SourceStart, "position monotonicity")
		pos = seg.SourceEnd
	}
	assert.Equal(t, len(src), pos)
}

func TestSeedCorpus(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		src     string
		want    string
	}{
		{name: "em and en dash", dialect: "latex", src: "a---b and c--d", want: "a—b and c–d"},
		{name: "smart quotes", dialect: "latex", src: "He said ``hello''.", want: `He said “hello”.`},
		{name: "non-breaking space", dialect: "latex", src: "A~B", want: "A\u00a0B"},
		{name: "math dummy sentence", dialect: "latex", src: `\begin{equation}a=1\end{equation} Done.`, want: " Aia0. Done."},
		{name: "plain prose passthrough", dialect: "latex", src: "just plain prose", want: "just plain prose"},
		{name: "ignored environment", dialect: "latex", src: `\begin{verbatim}raw $$ stuff\end{verbatim}`, want: ""},
		{name: "accent command", dialect: "latex", src: `\'{e}cole`, want: "école"},
		{name: "abbreviation macro", dialect: "latex", src: `e.g.\eg done`, want: "e.g.e.g. done"},
		{name: "sectioning heading period", dialect: "latex", src: `\section{Intro}`, want: "Intro."},
		{name: "comment swallowed", dialect: "latex", src: "a%a comment\nb", want: "ab"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sink := scan(t, test.dialect, test.src)
			assert.Equal(t, test.want, sink.Plaintext())
		})
	}
}

func TestTextPassthroughIsSingleSegment(t *testing.T) {
	src := "justplainprosewithnospecialcharactersatall"
	sink := scan(t, "latex", src)

	require.Len(t, sink.Segments(), 1, "a source of entirely non-special text must yield exactly one segment")
	seg := sink.Segments()[0]
	assert.Equal(t, annotate.Text, seg.Kind)
	assert.Equal(t, src, sink.Plaintext())
}

func TestLengthConsumeIdempotence(t *testing.T) {
	sink := scan(t, "latex", `{12pt}`)
	assert.Empty(t, sink.Plaintext(), "a brace-delimited length alone yields no plaintext")
}

func TestModeStackNeverEmpty(t *testing.T) {
	b := New("latex")
	_, err := b.AddCode(`\end{itemize}\end{itemize}\end{itemize}`)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.modes.len(), 1)
	assert.Equal(t, ParagraphText, b.modes.current(), "top of stack at EOF is ParagraphText")
}

func TestMathBlockBalance(t *testing.T) {
	sink := scan(t, "latex", `$x$ and $$y$$ and \(z\) and \[w\]`)
	assert.NotEmpty(t, sink.Plaintext())
}

func TestDummyDisjointFromProse(t *testing.T) {
	sink := scan(t, "latex", `The value is $x^2$ here.`)
	assert.NotContains(t, sink.Plaintext(), "x^2")
}

func TestStrictModeNoErrorWhenScanProgresses(t *testing.T) {
	b := New("latex")
	b.SetStrictMode(true)
	_, err := b.AddCode("plain text, no special cases at all")
	require.NoError(t, err)
}

func TestIgnoreEnvironmentConsumesMatchingEnd(t *testing.T) {
	sink := scan(t, "latex", `\begin{verbatim}a{b}c\end{verbatim}after`)
	assert.Equal(t, "after", sink.Plaintext())
}

func TestRsweaveChunk(t *testing.T) {
	sink := scan(t, "rsweave", "before <<chunk>>=\ncode here\n@ after")
	assert.Equal(t, "before after", sink.Plaintext())
}

func TestVerbReplacedByDummy(t *testing.T) {
	sink := scan(t, "latex", `Look: \verb|raw$$text| done.`)
	assert.NotContains(t, sink.Plaintext(), "raw$$text")
	assert.Contains(t, sink.Plaintext(), "Look:")
	assert.Contains(t, sink.Plaintext(), "done.")
}

func TestWhitespaceCollapsesToSingleSpace(t *testing.T) {
	sink := scan(t, "latex", "a   \n  b")
	assert.Equal(t, "a b", sink.Plaintext())
}

func TestDoubleNewlineIsParagraphBreak(t *testing.T) {
	sink := scan(t, "latex", "a\n\n\nb")
	assert.Equal(t, "a\n\nb", sink.Plaintext())
}
