// ABOUTME: Top-level event dispatcher routing to commands, chat, and callbacks
// ABOUTME: Converts the error taxonomy into user-facing replies, never panics out

package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gabblebot/gabble/internal/callbacks"
	"github.com/gabblebot/gabble/internal/commands"
	"github.com/gabblebot/gabble/internal/llm"
	"github.com/gabblebot/gabble/internal/session"
	"github.com/gabblebot/gabble/internal/users"
)

// apologyText is the single fixed message users see on any backend failure.
// Backend detail stays in the logs.
const apologyText = "Sorry, I'm having trouble reaching the AI service right now. Please try again in a moment."

// unknownCallbackText is the neutral reply for a press on a stale button.
const unknownCallbackText = "That button isn't active anymore. Try /start for a fresh set."

// Completer is what free-text handling needs from the backend adapter.
type Completer interface {
	Complete(ctx context.Context, turns []session.Turn) (string, error)
}

// Replier is what the dispatcher needs from the transport layer to deliver
// outcomes and acknowledge button presses.
type Replier interface {
	Send(ctx context.Context, chatID int64, reply *commands.Reply) error
	AckCallback(ctx context.Context, callbackID string) error

	// SendTyping signals that a reply is being prepared. Best effort; the
	// dispatcher ignores failures.
	SendTyping(ctx context.Context, chatID int64) error
}

// Dispatcher classifies inbound events and routes each to exactly one
// downstream component.
type Dispatcher struct {
	users     *users.Registry
	sessions  *session.Store
	router    *commands.Router
	callbacks *callbacks.Registry
	completer Completer
	replier   Replier
	logger    *slog.Logger
}

// New creates a dispatcher over the given stores, tables, and collaborators.
func New(
	userRegistry *users.Registry,
	sessions *session.Store,
	router *commands.Router,
	callbackRegistry *callbacks.Registry,
	completer Completer,
	replier Replier,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		users:     userRegistry,
		sessions:  sessions,
		router:    router,
		callbacks: callbackRegistry,
		completer: completer,
		replier:   replier,
		logger:    logger.With("component", "dispatch"),
	}
}

// HandleEvent processes one inbound event to completion. All failures are
// converted to user-facing replies here; nothing propagates to the caller,
// so one conversation's trouble never affects another's.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev *Event) {
	if ev.UserID != 0 {
		if d.users.Register(ev.UserID) {
			d.logger.Info("new user registered", "user_id", ev.UserID, "total", d.users.Count())
		}
	}

	logger := d.logger.With("request_id", uuid.New().String(), "chat_id", ev.ChatID)

	switch classify(ev) {
	case kindCallback:
		d.handleCallback(ctx, ev, logger)
	case kindCommand:
		d.handleCommand(ctx, ev, logger)
	case kindText:
		d.handleText(ctx, ev, logger)
	default:
		logger.Debug("event without text or callback ignored", "user_id", ev.UserID)
	}
}

// handleCommand routes "/name args..." through the command table.
func (d *Dispatcher) handleCommand(ctx context.Context, ev *Event, logger *slog.Logger) {
	name, args := splitCommand(ev.Text)
	logger.Debug("command received", "command", name, "args", len(args))

	reply, err := d.router.Dispatch(ctx, &commands.Invocation{
		UserID:  ev.UserID,
		ChatID:  ev.ChatID,
		Command: name,
		Args:    args,
	})
	d.deliver(ctx, ev.ChatID, reply, err, logger)
}

// handleText runs the free-text conversation flow. The per-conversation
// guard covers append, completion, and the assistant append so concurrent
// messages in one chat serialize in arrival order; the outbound send
// happens after the guard is released.
func (d *Dispatcher) handleText(ctx context.Context, ev *Event, logger *slog.Logger) {
	_ = d.replier.SendTyping(ctx, ev.ChatID)

	replyText, err := func() (string, error) {
		guard := d.sessions.Guard(ev.ChatID)
		guard.Lock()
		defer guard.Unlock()

		d.sessions.Append(ev.ChatID, session.RoleUser, ev.Text)
		turns := d.sessions.Snapshot(ev.ChatID)

		text, err := d.completer.Complete(ctx, turns)
		if err != nil {
			// The user turn stays; no assistant turn is ever stored for a
			// failed or cancelled completion.
			return "", err
		}
		d.sessions.Append(ev.ChatID, session.RoleAssistant, text)
		return text, nil
	}()

	if err != nil {
		logger.Error("completion failed", "error", err)
		d.send(ctx, ev.ChatID, &commands.Reply{Text: apologyText}, logger)
		return
	}
	d.send(ctx, ev.ChatID, &commands.Reply{Text: replyText}, logger)
}

// handleCallback acknowledges the press, resolves the token, and executes
// the bound action. Unknown tokens still get acknowledged.
func (d *Dispatcher) handleCallback(ctx context.Context, ev *Event, logger *slog.Logger) {
	if ev.CallbackID != "" {
		if err := d.replier.AckCallback(ctx, ev.CallbackID); err != nil {
			logger.Warn("callback ack failed", "error", err)
		}
	}

	action, err := d.callbacks.Resolve(ev.CallbackToken)
	if errors.Is(err, callbacks.ErrUnknownCallback) {
		logger.Info("unknown callback token", "token", ev.CallbackToken)
		d.send(ctx, ev.ChatID, &commands.Reply{Text: unknownCallbackText}, logger)
		return
	}

	if action.Static != "" {
		d.send(ctx, ev.ChatID, &commands.Reply{Text: action.Static}, logger)
		return
	}

	logger.Debug("callback re-invokes command", "command", action.Command)
	reply, err := d.router.Dispatch(ctx, &commands.Invocation{
		UserID:  ev.UserID,
		ChatID:  ev.ChatID,
		Command: action.Command,
	})
	d.deliver(ctx, ev.ChatID, reply, err, logger)
}

// deliver converts a command outcome or error into the outbound reply.
func (d *Dispatcher) deliver(ctx context.Context, chatID int64, reply *commands.Reply, err error, logger *slog.Logger) {
	var usage *commands.UsageError
	switch {
	case err == nil:
		d.send(ctx, chatID, reply, logger)
	case errors.As(err, &usage):
		d.send(ctx, chatID, &commands.Reply{Text: usage.Text}, logger)
	case errors.Is(err, llm.ErrGeneration):
		logger.Error("backend generation failed", "error", err)
		d.send(ctx, chatID, &commands.Reply{Text: apologyText}, logger)
	default:
		logger.Error("command handler failed", "error", err)
		d.send(ctx, chatID, &commands.Reply{Text: apologyText}, logger)
	}
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, reply *commands.Reply, logger *slog.Logger) {
	if reply == nil {
		return
	}
	if err := d.replier.Send(ctx, chatID, reply); err != nil {
		logger.Error("outbound send failed", "error", err)
	}
}
