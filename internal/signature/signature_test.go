package signature

import (
	"testing"

	"github.com/ltex-go/annotate/internal/settings"
)

func TestCommandSignatureMatchFrom(t *testing.T) {
	sig := CommandSignature{Name: "href", Pattern: ArgumentPattern{SlotRequired, SlotRequired}}

	tests := []struct {
		name       string
		code       string
		pos        int
		wantLength int
		wantOK     bool
	}{
		{name: "two required args", code: `{http://x}{label}`, pos: 0, wantLength: len(`{http://x}{label}`), wantOK: true},
		{name: "missing second arg", code: `{http://x}`, pos: 0, wantOK: false},
		{name: "nested braces", code: `{a{b}c}{d}`, pos: 0, wantLength: len(`{a{b}c}{d}`), wantOK: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			length, ok := sig.MatchFrom(test.code, test.pos)
			if ok != test.wantOK {
				t.Fatalf("MatchFrom(%q) ok = %v, want %v", test.code, ok, test.wantOK)
			}
			if ok && length != test.wantLength {
				t.Errorf("MatchFrom(%q) length = %d, want %d", test.code, length, test.wantLength)
			}
		})
	}
}

func TestOptionalSlotSkippedWhenAbsent(t *testing.T) {
	sig := CommandSignature{Name: "cite", Pattern: ArgumentPattern{SlotOptional, SlotRequired}}
	length, ok := sig.MatchFrom(`{key}`, 0)
	if !ok {
		t.Fatal("expected match when optional slot is absent")
	}
	if length != len(`{key}`) {
		t.Errorf("length = %d, want %d", length, len(`{key}`))
	}
}

func TestLookupCommandLongestMatchWins(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("todo", settings.ActionDefault, false, ArgumentPattern{SlotRequired})
	r.RegisterCommand("todo", settings.ActionIgnore, false, ArgumentPattern{SlotOptional, SlotRequired})

	sig, length, ok := r.LookupCommand(`[x]{y}`, "todo", 0)
	if !ok {
		t.Fatal("expected a match")
	}
	if length != len(`[x]{y}`) {
		t.Errorf("length = %d, want %d (the longer, later-registered pattern)", length, len(`[x]{y}`))
	}
	if sig.Action != settings.ActionIgnore {
		t.Errorf("Action = %v, want ActionIgnore", sig.Action)
	}
}

func TestLookupCommandTieBreaksToLaterRegistration(t *testing.T) {
	r := NewRegistry()
	r.commands = map[string][]CommandSignature{}
	r.RegisterCommand("x", settings.ActionDefault, false, ArgumentPattern{SlotRequired})
	r.RegisterCommand("x", settings.ActionIgnore, false, ArgumentPattern{SlotRequired})

	sig, _, ok := r.LookupCommand(`{a}`, "x", 0)
	if !ok {
		t.Fatal("expected a match")
	}
	if sig.Action != settings.ActionIgnore {
		t.Errorf("Action = %v, want ActionIgnore (the later registration)", sig.Action)
	}
}

func TestParseCommandPattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		wantName    string
		wantPattern ArgumentPattern
		wantOK      bool
	}{
		{name: "optional then required", pattern: `\todo[]{}`, wantName: "todo", wantPattern: ArgumentPattern{SlotOptional, SlotRequired}, wantOK: true},
		{name: "bare command", pattern: `\foo`, wantName: "foo", wantPattern: nil, wantOK: true},
		{name: "no backslash", pattern: `foo{}`, wantOK: false},
		{name: "unbalanced slot", pattern: `\foo{`, wantOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			name, pattern, ok := ParseCommandPattern(test.pattern)
			if ok != test.wantOK {
				t.Fatalf("ParseCommandPattern(%q) ok = %v, want %v", test.pattern, ok, test.wantOK)
			}
			if !ok {
				return
			}
			if name != test.wantName {
				t.Errorf("name = %q, want %q", name, test.wantName)
			}
			if len(pattern) != len(test.wantPattern) {
				t.Errorf("pattern = %v, want %v", pattern, test.wantPattern)
			}
		})
	}
}

func TestIsMathEnvironment(t *testing.T) {
	if !IsMathEnvironment("equation*") {
		t.Error("equation* should be a math environment")
	}
	if IsMathEnvironment("itemize") {
		t.Error("itemize should not be a math environment")
	}
	if !IsInlineMathEnvironment("math") {
		t.Error("math should be the inline math environment")
	}
	if IsInlineMathEnvironment("equation") {
		t.Error("equation is a display math environment, not inline")
	}
}

func TestApplySettingsSkipsUnknownActions(t *testing.T) {
	r := NewRegistry()
	s := &settings.Settings{
		LatexCommands: map[string]string{
			`\mycmd{}`: "bogus-action",
		},
	}
	r.ApplySettings(s)
	if _, _, ok := r.LookupCommand(`{x}`, "mycmd", 0); ok {
		t.Error("an unknown action string should not register a command")
	}
}
