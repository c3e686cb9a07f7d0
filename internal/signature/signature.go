// Package signature describes LaTeX command and environment signatures:
// declarative argument shapes plus an action, and the default catalogues of
// built-in signatures the LaTeX builder consults for "any other command"
// (spec §4.3.3, item 12) and for \begin/\end of a non-math environment.
package signature

import (
	"strings"

	"github.com/ltex-go/annotate/internal/settings"
)

// SlotKind is one argument slot in a command's argument pattern.
type SlotKind int

const (
	// SlotRequired is a brace-delimited {...} argument.
	SlotRequired SlotKind = iota
	// SlotOptional is a bracket-delimited [...] argument that may be absent.
	SlotOptional
	// SlotParenthesised is a paren-delimited (...) argument that may be absent.
	SlotParenthesised
)

// ArgumentPattern is a sequence of required/optional/parenthesised slots.
type ArgumentPattern []SlotKind

// CommandSignature is an immutable description of a command's shape.
type CommandSignature struct {
	Name    string
	Action  settings.Action
	Plural  bool
	Pattern ArgumentPattern
}

// EnvironmentSignature is an immutable description of an environment.
type EnvironmentSignature struct {
	Name   string
	Action settings.Action
}

// MatchFrom tries to consume sig's argument pattern starting at pos in code.
// Optional/parenthesised slots are skipped if absent; a missing required
// slot fails the whole match. Returns the number of bytes consumed.
func (sig CommandSignature) MatchFrom(code string, pos int) (length int, ok bool) {
	p := pos
	for _, slot := range sig.Pattern {
		switch slot {
		case SlotRequired:
			end, matched := matchDelimited(code, p, '{', '}')
			if !matched {
				return 0, false
			}
			p = end
		case SlotOptional:
			if end, matched := matchDelimited(code, p, '[', ']'); matched {
				p = end
			}
		case SlotParenthesised:
			if end, matched := matchDelimited(code, p, '(', ')'); matched {
				p = end
			}
		}
	}
	return p - pos, true
}

// matchDelimited finds the end of a balanced open/close delimited group
// starting exactly at pos (code[pos] must be open). Nesting of the same
// delimiter pair is tracked; no escaping is honored beyond a literal
// backslash-prefixed delimiter, matching the builder's no-backtracking style.
func matchDelimited(code string, pos int, open, close byte) (int, bool) {
	if pos >= len(code) || code[pos] != open {
		return 0, false
	}
	depth := 0
	i := pos
	for i < len(code) {
		switch code[i] {
		case '\\':
			i += 2
			continue
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// Registry is the longest-match command/environment lookup table. Commands
// are stored per name in registration order so ties break toward the later
// registration, per Design Notes §9.
type Registry struct {
	commands     map[string][]CommandSignature
	environments map[string]EnvironmentSignature
}

// NewRegistry returns a registry pre-loaded with the default catalogues.
func NewRegistry() *Registry {
	r := &Registry{
		commands:     map[string][]CommandSignature{},
		environments: map[string]EnvironmentSignature{},
	}
	for _, sig := range defaultCommandSignatures {
		r.RegisterCommand(sig.Name, sig.Action, sig.Plural, sig.Pattern)
	}
	for _, sig := range defaultEnvironmentSignatures {
		r.RegisterEnvironment(sig.Name, sig.Action)
	}
	return r
}

// RegisterCommand appends a new candidate signature for name.
func (r *Registry) RegisterCommand(name string, action settings.Action, plural bool, pattern ArgumentPattern) {
	r.commands[name] = append(r.commands[name], CommandSignature{
		Name:    name,
		Action:  action,
		Plural:  plural,
		Pattern: pattern,
	})
}

// RegisterEnvironment overwrites the signature for name.
func (r *Registry) RegisterEnvironment(name string, action settings.Action) {
	r.environments[name] = EnvironmentSignature{Name: name, Action: action}
}

// ApplySettings registers host-provided overrides on top of the defaults.
// Patterns are parsed as `\name` followed by a run of `{}`/`[]`/`()` tokens;
// unparseable patterns and unknown action strings are silently skipped.
func (r *Registry) ApplySettings(s *settings.Settings) {
	if s == nil {
		return
	}
	for pattern, actionString := range s.LatexCommands {
		action, plural, ok := settings.ParseAction(actionString)
		if !ok {
			continue
		}
		name, argPattern, ok := ParseCommandPattern(pattern)
		if !ok {
			continue
		}
		r.RegisterCommand(name, action, plural, argPattern)
	}
	for name, actionString := range s.LatexEnvironments {
		action, _, ok := settings.ParseAction(actionString)
		if !ok || action == settings.ActionDummy {
			continue
		}
		r.RegisterEnvironment(name, action)
	}
}

// ParseCommandPattern splits a pattern like `\todo[]{}` into the bare
// command name "todo" and its argument pattern [Optional, Required].
func ParseCommandPattern(pattern string) (name string, argPattern ArgumentPattern, ok bool) {
	if len(pattern) == 0 || pattern[0] != '\\' {
		return "", nil, false
	}
	i := 1
	start := i
	for i < len(pattern) && isNameChar(pattern[i]) {
		i++
	}
	if i == start {
		return "", nil, false
	}
	if i < len(pattern) && pattern[i] == '*' {
		i++
	}
	name = pattern[start:i]

	for i < len(pattern) {
		switch pattern[i] {
		case '{':
			if i+1 >= len(pattern) || pattern[i+1] != '}' {
				return "", nil, false
			}
			argPattern = append(argPattern, SlotRequired)
			i += 2
		case '[':
			if i+1 >= len(pattern) || pattern[i+1] != ']' {
				return "", nil, false
			}
			argPattern = append(argPattern, SlotOptional)
			i += 2
		case '(':
			if i+1 >= len(pattern) || pattern[i+1] != ')' {
				return "", nil, false
			}
			argPattern = append(argPattern, SlotParenthesised)
			i += 2
		default:
			return "", nil, false
		}
	}
	return name, argPattern, true
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '@'
}

// LookupCommand finds the candidate signature registered under name whose
// pattern matches the longest prefix of code starting at pos. Ties (equal
// match length) resolve to the later-registered candidate.
func (r *Registry) LookupCommand(code string, name string, pos int) (CommandSignature, int, bool) {
	candidates := r.commands[name]
	var best CommandSignature
	bestLen := -1
	found := false
	for _, sig := range candidates {
		if length, ok := sig.MatchFrom(code, pos); ok {
			if length >= bestLen {
				best = sig
				bestLen = length
				found = true
			}
		}
	}
	return best, bestLen, found
}

// LookupEnvironment returns the registered signature for an environment name.
func (r *Registry) LookupEnvironment(name string) (EnvironmentSignature, bool) {
	sig, ok := r.environments[name]
	return sig, ok
}

// mathEnvironments is the built-in math-environment name set (spec §6),
// used for membership testing when dispatching \begin/\end.
var mathEnvironments = map[string]bool{
	"align": true, "align*": true,
	"alignat": true, "alignat*": true,
	"displaymath": true,
	"eqnarray":    true, "eqnarray*": true,
	"equation": true, "equation*": true,
	"flalign": true, "flalign*": true,
	"gather": true, "gather*": true,
	"math":      true,
	"multline":  true, "multline*": true,
}

// IsMathEnvironment reports whether name is one of the built-in math
// environments.
func IsMathEnvironment(name string) bool {
	return mathEnvironments[name]
}

// IsInlineMathEnvironment reports whether a math environment is the inline
// "math" environment as opposed to a display one.
func IsInlineMathEnvironment(name string) bool {
	return name == "math"
}

// fontChangeCommands leave the math-vowel state undecided (spec §3): they
// change typeface but say nothing about how the content that follows is
// pronounced.
var fontChangeCommands = map[string]bool{
	"mathbb": true, "mathbf": true, "mathcal": true, "mathfrak": true,
	"mathit": true, "mathrm": true, "mathscr": true, "mathsf": true,
	"mathtt": true, "boldsymbol": true,
}

// IsFontChangeCommand reports whether name is a font-change command.
func IsFontChangeCommand(name string) bool {
	return fontChangeCommands[strings.TrimSuffix(name, "*")]
}

// defaultCommandSignatures are common non-special-cased LaTeX commands,
// consulted by the generic "any other command" dispatch (spec §4.3.3 item
// 12). Commands already handled by a dedicated scanner subcase (sectioning,
// accents, spacing, abbreviations, \verb, \text/\intertext, ...) are not
// repeated here.
var defaultCommandSignatures = []CommandSignature{
	{Name: "label", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "ref", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "eqref", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "pageref", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "cite", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
	{Name: "citep", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
	{Name: "citet", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
	{Name: "footnote", Action: settings.ActionDefault, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "emph", Action: settings.ActionDefault, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "textbf", Action: settings.ActionDefault, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "textit", Action: settings.ActionDefault, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "underline", Action: settings.ActionDefault, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "url", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "href", Action: settings.ActionDummy, Pattern: ArgumentPattern{SlotRequired, SlotRequired}},
	{Name: "includegraphics", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
	{Name: "caption", Action: settings.ActionDefault, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
	{Name: "todo", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
	{Name: "input", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "include", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "bibliography", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "bibliographystyle", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotRequired}},
	{Name: "usepackage", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
	{Name: "documentclass", Action: settings.ActionIgnore, Pattern: ArgumentPattern{SlotOptional, SlotRequired}},
}

// defaultEnvironmentSignatures are the non-math environments the engine
// treats specially out of the box; everything else falls through to
// "unrecognised -> default" per spec §7.
var defaultEnvironmentSignatures = []EnvironmentSignature{
	{Name: "verbatim", Action: settings.ActionIgnore},
	{Name: "lstlisting", Action: settings.ActionIgnore},
	{Name: "minted", Action: settings.ActionIgnore},
	{Name: "tikzpicture", Action: settings.ActionIgnore},
	{Name: "figure", Action: settings.ActionDefault},
	{Name: "table", Action: settings.ActionDefault},
	{Name: "itemize", Action: settings.ActionDefault},
	{Name: "enumerate", Action: settings.ActionDefault},
}
