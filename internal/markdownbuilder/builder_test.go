package markdownbuilder

import (
	"strings"
	"testing"
)

func TestAddCodePlainParagraph(t *testing.T) {
	b := New()
	sink, err := b.AddCode("Hello world.")
	if err != nil {
		t.Fatalf("AddCode returned error: %v", err)
	}
	if got, want := sink.Plaintext(), "Hello world."; got != want {
		t.Errorf("Plaintext() = %q, want %q", got, want)
	}
	if got, want := sink.SourceLen(), len("Hello world."); got != want {
		t.Errorf("SourceLen() = %d, want %d", got, want)
	}
}

func TestAddCodeStripsFrontMatter(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "simple front matter", src: "---\ntitle: x\n---\nBody.", want: "Body."},
		{name: "no front matter", src: "Body only.", want: "Body only."},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := New()
			sink, err := b.AddCode(test.src)
			if err != nil {
				t.Fatalf("AddCode returned error: %v", err)
			}
			if got := sink.Plaintext(); got != test.want {
				t.Errorf("Plaintext() = %q, want %q", got, test.want)
			}
		})
	}
}

// TestAddCodeUnterminatedFrontMatterLeftAlone covers spec §4.4's requirement
// that an unclosed "---" block is not treated as front matter: the "title:
// x" line must survive into the plaintext rather than being silently
// swallowed as if it were a delimiter body.
func TestAddCodeUnterminatedFrontMatterLeftAlone(t *testing.T) {
	b := New()
	sink, err := b.AddCode("---\ntitle: x\nBody.")
	if err != nil {
		t.Fatalf("AddCode returned error: %v", err)
	}
	got := sink.Plaintext()
	if !strings.Contains(got, "title: x") {
		t.Errorf("Plaintext() = %q, want it to contain the un-stripped %q", got, "title: x")
	}
	if !strings.Contains(got, "Body.") {
		t.Errorf("Plaintext() = %q, want it to contain %q", got, "Body.")
	}
}

func TestAddCodeEmphasisAndStrongTextSurvives(t *testing.T) {
	b := New()
	sink, err := b.AddCode("a *b* and **c**.")
	if err != nil {
		t.Fatalf("AddCode returned error: %v", err)
	}
	want := "a b and c."
	if got := sink.Plaintext(); got != want {
		t.Errorf("Plaintext() = %q, want %q", got, want)
	}
}

func TestAddCodeInlineCodeBecomesDummy(t *testing.T) {
	b := New()
	sink, err := b.AddCode("run `go build` now")
	if err != nil {
		t.Fatalf("AddCode returned error: %v", err)
	}
	got := sink.Plaintext()
	if strings.Contains(got, "go build") {
		t.Errorf("Plaintext() = %q, should not contain the raw code span", got)
	}
	if !strings.Contains(got, "run") || !strings.Contains(got, "now") {
		t.Errorf("Plaintext() = %q, want surrounding prose preserved", got)
	}
}

func TestAddCodeFencedCodeBlockIgnored(t *testing.T) {
	b := New()
	sink, err := b.AddCode("before\n\n```\nsecret(payload)\n```\n\nafter")
	if err != nil {
		t.Fatalf("AddCode returned error: %v", err)
	}
	got := sink.Plaintext()
	if strings.Contains(got, "secret") {
		t.Errorf("Plaintext() = %q, fenced code block should be fully ignored", got)
	}
}

func TestAddCodeHTMLEntityDecoded(t *testing.T) {
	b := New()
	sink, err := b.AddCode("a &amp; b")
	if err != nil {
		t.Fatalf("AddCode returned error: %v", err)
	}
	if got, want := sink.Plaintext(), "a & b"; got != want {
		t.Errorf("Plaintext() = %q, want %q", got, want)
	}
}

func TestAddCodeSourceConservation(t *testing.T) {
	srcs := []string{
		"Hello world.",
		"---\ntitle: x\n---\nBody.",
		"# Heading\n\nSome *text* and `code`.",
		"before\n\n```\ncode\n```\n\nafter",
	}
	for _, src := range srcs {
		b := New()
		sink, err := b.AddCode(src)
		if err != nil {
			t.Fatalf("AddCode(%q) returned error: %v", src, err)
		}
		if got, want := sink.SourceLen(), len(src); got != want {
			t.Errorf("AddCode(%q): SourceLen() = %d, want %d (len(src))", src, got, want)
		}
	}
}

