package tui

import (
	"maps"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/talldan/revdiff/internal/core/config"
)

// KeyResolver resolves configured key presses to built-in actions.
type KeyResolver struct {
	keybindings map[string]config.Keybinding
}

// NewKeyResolver creates a resolver over the merged keybindings.
func NewKeyResolver(keybindings map[string]config.Keybinding) *KeyResolver {
	return &KeyResolver{keybindings: keybindings}
}

// Resolve returns the action bound to the given key, if any.
func (r *KeyResolver) Resolve(key string) (string, bool) {
	kb, ok := r.keybindings[key]
	if !ok {
		return "", false
	}
	return kb.Action, true
}

// KeyFor returns the first key bound to the given action, for display
// in hints and help text.
func (r *KeyResolver) KeyFor(action string) string {
	for _, k := range slices.Sorted(maps.Keys(r.keybindings)) {
		if r.keybindings[k].Action == action {
			return k
		}
	}
	return ""
}

// HelpString returns a formatted help line for all keybindings.
func (r *KeyResolver) HelpString() string {
	keys := slices.Sorted(maps.Keys(r.keybindings))
	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		kb := r.keybindings[k]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		entries = append(entries, "["+k+"] "+help)
	}
	return strings.Join(entries, "  ")
}

// KeyBindings returns key.Binding objects for integration with the
// bubbles help system.
func (r *KeyResolver) KeyBindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(r.keybindings))
	bindings := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		kb := r.keybindings[k]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, help),
		))
	}
	return bindings
}
