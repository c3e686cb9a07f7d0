// Package settings holds the in-process configuration the host passes to a
// builder. Reading these values out of a JSON settings file is the host's
// job, not this engine's; this package only models the already-decoded
// shape described in the markup-to-plaintext engine's external interface.
package settings

// Action is a command/environment/markdown-node action as named in the
// "action_string" fields of the host settings contract.
type Action int

const (
	// ActionDefault treats the signature's contents normally (recurse/pass
	// through as prose).
	ActionDefault Action = iota
	// ActionIgnore discards the whole match as markup.
	ActionIgnore
	// ActionDummy replaces the whole match with a generated dummy noun.
	ActionDummy
)

// ParseAction maps one of the host's action strings to an Action plus
// whether the plural dummy generator should be used ("pluralDummy"). Unknown
// strings are reported via ok=false and must be silently skipped by callers,
// per the external-interface contract.
func ParseAction(actionString string) (action Action, plural bool, ok bool) {
	switch actionString {
	case "default":
		return ActionDefault, false, true
	case "ignore":
		return ActionIgnore, false, true
	case "dummy":
		return ActionDummy, false, true
	case "pluralDummy":
		return ActionDummy, true, true
	default:
		return ActionDefault, false, false
	}
}

// Settings is the settings value the host supplies to a builder via
// SetSettings. Its fields mirror the external-interface contract: a
// language short code for the dummy generator, and per-domain action maps.
type Settings struct {
	// LanguageShortCode is a BCP-47-like tag (e.g. "en", "de") used by the
	// dummy generator to pick word forms.
	LanguageShortCode string

	// LatexCommands maps a command pattern (e.g. `\todo[]{}`) to an action
	// string. The pattern encodes both the command name and its argument
	// shape: a run of `{}`, `[]`, `()` tokens after the name.
	LatexCommands map[string]string

	// LatexEnvironments maps an environment name to an action string
	// ("default" or "ignore").
	LatexEnvironments map[string]string

	// MarkdownNodes maps a Markdown AST node kind name (e.g. "codeblock")
	// to an action string, used by the Markdown builder.
	MarkdownNodes map[string]string
}

// New returns a Settings value with English as the default language and
// empty override maps.
func New() *Settings {
	return &Settings{
		LanguageShortCode: "en",
		LatexCommands:     map[string]string{},
		LatexEnvironments: map[string]string{},
		MarkdownNodes:     map[string]string{},
	}
}
