package latexbuilder

import "fmt"

// NoProgressError is raised in strict mode when an iteration of the scan
// loop fails to advance pos (spec §4.3.1, §7). It carries a debug snapshot
// so the host can report where the scanner got stuck.
type NoProgressError struct {
	Pos          int
	CurrentChar  byte
	CurrentMode  Mode
	ModeStackLen int
	Lookahead    string
}

func (e *NoProgressError) Error() string {
	return fmt.Sprintf(
		"latexbuilder: no progress at pos %d (mode=%v, stack depth=%d, char=%q, next=%q)",
		e.Pos, e.CurrentMode, e.ModeStackLen, e.CurrentChar, e.Lookahead,
	)
}

func (b *Builder) noProgressError() *NoProgressError {
	end := b.pos + 100
	if end > len(b.code) {
		end = len(b.code)
	}
	var c byte
	if b.pos < len(b.code) {
		c = b.code[b.pos]
	}
	return &NoProgressError{
		Pos:          b.pos,
		CurrentChar:  c,
		CurrentMode:  b.modes.current(),
		ModeStackLen: b.modes.len(),
		Lookahead:    b.code[b.pos:end],
	}
}
