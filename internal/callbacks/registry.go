// ABOUTME: Static token-to-action table for interactive button presses
// ABOUTME: Actions either re-invoke a command or emit a static reply

package callbacks

import "errors"

// ErrUnknownCallback is returned when a token has no registered action.
// The press must still be acknowledged to the transport.
var ErrUnknownCallback = errors.New("unknown callback token")

// Well-known tokens bound by the default table.
const (
	TokenModels = "models"
	TokenHelp   = "help"
	TokenAbout  = "about"
)

// Action is the resolved binding for a token. Exactly one of Command or
// Static is set: Command names a command-table entry to re-invoke, Static
// is an informational reply sent verbatim.
type Action struct {
	Command string
	Static  string
}

// Registry is the token-to-action table. Built once at startup; reads need
// no synchronization afterwards.
type Registry struct {
	actions map[string]Action
}

// NewRegistry creates a registry from a binding table.
func NewRegistry(bindings map[string]Action) *Registry {
	actions := make(map[string]Action, len(bindings))
	for token, action := range bindings {
		actions[token] = action
	}
	return &Registry{actions: actions}
}

// DefaultBindings returns the standard button set.
func DefaultBindings(aboutText string) map[string]Action {
	return map[string]Action{
		TokenModels: {Command: "models"},
		TokenHelp:   {Command: "help"},
		TokenAbout:  {Static: aboutText},
	}
}

// Resolve looks up the action for a token.
func (r *Registry) Resolve(token string) (Action, error) {
	action, ok := r.actions[token]
	if !ok {
		return Action{}, ErrUnknownCallback
	}
	return action, nil
}
