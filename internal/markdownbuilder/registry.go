package markdownbuilder

import "github.com/ltex-go/annotate/internal/settings"

type nodeSignature struct {
	action settings.Action
	plural bool
}

// Registry is the Kind→Action lookup table, analogous to internal/signature's
// command/environment registry but keyed by markdown node kind (spec §6,
// `markdown_nodes`).
type Registry struct {
	actions map[Kind]nodeSignature
}

// NewRegistry returns a registry pre-loaded with the default catalogue.
func NewRegistry() *Registry {
	r := &Registry{actions: map[Kind]nodeSignature{}}
	for kind, sig := range defaultNodeSignatures {
		r.actions[kind] = sig
	}
	return r
}

// defaultNodeSignatures mirrors the LaTeX builder's \verb (Dummy) / verbatim
// environment (Ignore) split: inline code stands in for a noun so the
// surrounding sentence still parses, while a fenced or indented block is
// opaque block structure with no inline prose role to summarise. Inline
// and display math default to Dummy for the same reason the LaTeX math
// modes do — see internal/latexbuilder's generateMathDummy.
var defaultNodeSignatures = map[Kind]nodeSignature{
	KindCode:      {action: settings.ActionDummy},
	KindCodeBlock: {action: settings.ActionIgnore},
	KindHTMLBlock: {action: settings.ActionIgnore},
	KindMath:      {action: settings.ActionDummy},
	KindMathBlock: {action: settings.ActionDummy},
}

// Lookup returns the registered action for kind, if any.
func (r *Registry) Lookup(kind Kind) (nodeSignature, bool) {
	sig, ok := r.actions[kind]
	return sig, ok
}

// ApplySettings registers host-provided overrides on top of the defaults,
// keyed by node-kind name (spec §6 markdown_nodes); unknown action strings
// are silently skipped, same as the LaTeX registry.
func (r *Registry) ApplySettings(s *settings.Settings) {
	if s == nil {
		return
	}
	for name, actionString := range s.MarkdownNodes {
		action, plural, ok := settings.ParseAction(actionString)
		if !ok {
			continue
		}
		r.actions[Kind(name)] = nodeSignature{action: action, plural: plural}
	}
}
