// ABOUTME: Command router mapping command names to registered handlers
// ABOUTME: Defines the Reply value and the user-visible UsageError type

package commands

import (
	"context"
	"fmt"
	"log/slog"
)

// UsageError signals a malformed command invocation. The text is shown to
// the user as-is; it is not logged as a system fault.
type UsageError struct {
	Text string
}

func (e *UsageError) Error() string { return e.Text }

// Button is one interactive button attached to a reply. Token correlates a
// later press back to a registered callback action.
type Button struct {
	Label string
	Token string
}

// Reply is the outcome of a command: text, an image locator, or both, with
// optional interactive buttons. The transport layer decides presentation.
type Reply struct {
	Text    string
	Image   string // locator for a generated asset; empty for text replies
	Buttons []Button
}

// Invocation carries the conversation context for one command execution.
type Invocation struct {
	UserID  int64
	ChatID  int64
	Args    []string
	Command string
}

// Handler executes one command.
type Handler func(ctx context.Context, inv *Invocation) (*Reply, error)

// Router holds the registered command table.
type Router struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewRouter creates an empty command router.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		handlers: make(map[string]Handler),
		logger:   logger.With("component", "commands"),
	}
}

// Register adds a handler to the table, replacing any existing entry.
func (r *Router) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Known reports whether name is in the command table.
func (r *Router) Known(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered command names; order is unspecified.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch routes an invocation to its handler. Unmatched names return a
// usage reply rather than an error so the router stays robust against
// table drift in the dispatcher's classifier.
func (r *Router) Dispatch(ctx context.Context, inv *Invocation) (*Reply, error) {
	h, ok := r.handlers[inv.Command]
	if !ok {
		r.logger.Warn("unregistered command reached router", "command", inv.Command)
		return nil, &UsageError{Text: fmt.Sprintf("Unknown command /%s. Try /help.", inv.Command)}
	}
	return h(ctx, inv)
}
