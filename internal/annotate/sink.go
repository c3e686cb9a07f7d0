// Package annotate implements the annotated-text sink: the stream
// abstraction the markup builders write into, tracking the offset map
// between source bytes and the plaintext handed to the grammar checker.
package annotate

import "strings"

// SegmentKind distinguishes prose bytes from elided/replaced source bytes.
type SegmentKind int

const (
	// Text segments pass their source bytes through to the plaintext verbatim.
	Text SegmentKind = iota
	// Markup segments attribute source bytes to a (possibly empty) prose
	// substitute string.
	Markup
)

// Segment is one span of the annotation stream. Concatenating segments in
// emission order reproduces the source; concatenating their plaintext
// projections reproduces the plaintext handed to the checker.
type Segment struct {
	Kind          SegmentKind
	SourceStart   int
	SourceEnd     int
	PlaintextStart int
	PlaintextEnd   int
	// Plaintext is the segment's contribution to the checked text: the
	// text bytes themselves for Text segments, interpretAs for Markup.
	Plaintext string
}

// Sink accumulates segments emitted by a builder and exposes the resulting
// plaintext together with a bidirectional offset map.
type Sink struct {
	segments  []Segment
	plaintext strings.Builder
	srcPos    int
}

// NewSink returns an empty sink with its source cursor at 0.
func NewSink() *Sink {
	return &Sink{}
}

// AddText appends plaintext s, attributing it to the next len(s) source
// bytes. Use when source bytes pass through to the checker unchanged.
func (s *Sink) AddText(text string) {
	s.append(Text, text, len(text))
}

// AddMarkup attributes len(raw) source bytes to no plaintext at all.
func (s *Sink) AddMarkup(raw string) {
	s.append(Markup, "", len(raw))
}

// AddMarkupInterpret attributes len(raw) source bytes to the plaintext
// interpretAs, a short prose substitute (often a dummy token or punctuation).
func (s *Sink) AddMarkupInterpret(raw, interpretAs string) {
	s.append(Markup, interpretAs, len(raw))
}

func (s *Sink) append(kind SegmentKind, plaintext string, sourceLen int) {
	seg := Segment{
		Kind:           kind,
		SourceStart:    s.srcPos,
		SourceEnd:      s.srcPos + sourceLen,
		PlaintextStart: s.plaintext.Len(),
		PlaintextEnd:   s.plaintext.Len() + len(plaintext),
		Plaintext:      plaintext,
	}
	s.segments = append(s.segments, seg)
	s.plaintext.WriteString(plaintext)
	s.srcPos += sourceLen
}

// Plaintext returns the full plaintext accumulated so far.
func (s *Sink) Plaintext() string {
	return s.plaintext.String()
}

// Segments returns the emitted segments in emission (source) order.
func (s *Sink) Segments() []Segment {
	return s.segments
}

// SourceLen returns the number of source bytes consumed so far.
func (s *Sink) SourceLen() int {
	return s.srcPos
}

// SourceToPlaintext maps a source byte offset to the plaintext offset of the
// segment covering it (or the segment boundary nearest to it, for offsets
// that land inside elided markup).
func (s *Sink) SourceToPlaintext(offset int) int {
	for _, seg := range s.segments {
		if offset < seg.SourceEnd {
			if offset <= seg.SourceStart {
				return seg.PlaintextStart
			}
			if seg.Kind == Text {
				return seg.PlaintextStart + (offset - seg.SourceStart)
			}
			return seg.PlaintextStart
		}
	}
	return s.plaintext.Len()
}

// PlaintextToSource maps a plaintext offset back to the source byte offset
// of the segment that produced it.
func (s *Sink) PlaintextToSource(offset int) int {
	for _, seg := range s.segments {
		if offset < seg.PlaintextEnd {
			if offset <= seg.PlaintextStart {
				return seg.SourceStart
			}
			if seg.Kind == Text {
				return seg.SourceStart + (offset - seg.PlaintextStart)
			}
			return seg.SourceStart
		}
	}
	return s.srcPos
}
