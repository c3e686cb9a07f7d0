package annotate

import "testing"

func TestAddTextAndAddMarkup(t *testing.T) {
	s := NewSink()
	s.AddText("Hello")
	s.AddMarkup("\\foo")
	s.AddMarkupInterpret("$x$", "Ina0")
	s.AddText(" world")

	want := "HelloIna0 world"
	if got := s.Plaintext(); got != want {
		t.Errorf("Plaintext() = %q, want %q", got, want)
	}

	wantSourceLen := len("Hello") + len("\\foo") + len("$x$") + len(" world")
	if got := s.SourceLen(); got != wantSourceLen {
		t.Errorf("SourceLen() = %d, want %d", got, wantSourceLen)
	}
}

func TestSourceConservation(t *testing.T) {
	src := "a\\bc$d$e"
	s := NewSink()
	s.AddText("a")
	s.AddMarkup("\\bc")
	s.AddMarkupInterpret("$d$", "Dummy")
	s.AddText("e")

	if got := s.SourceLen(); got != len(src) {
		t.Errorf("SourceLen() = %d, want %d (len(src))", got, len(src))
	}
}

func TestOffsetMapRoundTrip(t *testing.T) {
	s := NewSink()
	s.AddText("ab")     // source 0-2, plaintext 0-2
	s.AddMarkup("\\x")  // source 2-4, plaintext 2-2 (no plaintext contribution)
	s.AddText("cd")     // source 4-6, plaintext 2-4

	tests := []struct {
		name       string
		sourceOff  int
		plainOff   int
	}{
		{name: "start of first text segment", sourceOff: 0, plainOff: 0},
		{name: "inside first text segment", sourceOff: 1, plainOff: 1},
		{name: "inside markup segment maps to boundary", sourceOff: 3, plainOff: 2},
		{name: "inside second text segment", sourceOff: 5, plainOff: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := s.SourceToPlaintext(test.sourceOff); got != test.plainOff {
				t.Errorf("SourceToPlaintext(%d) = %d, want %d", test.sourceOff, got, test.plainOff)
			}
		})
	}

	// The plaintext->source direction should map back into the segment that
	// produced each plaintext offset.
	if got := s.PlaintextToSource(2); got != 4 {
		t.Errorf("PlaintextToSource(2) = %d, want 4", got)
	}
	if got := s.PlaintextToSource(0); got != 0 {
		t.Errorf("PlaintextToSource(0) = %d, want 0", got)
	}
}
