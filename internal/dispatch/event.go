// ABOUTME: Transport-neutral inbound event value and its classification
// ABOUTME: Splits command text into name and argument tokens

package dispatch

import "strings"

// Event is one inbound occurrence delivered by the transport layer.
// Exactly one of the three content forms is meaningful: a callback token,
// command text, or free text. The IDs are transport-assigned and opaque.
type Event struct {
	UserID int64
	ChatID int64

	// Text is the message text, if any. Commands are text starting with "/".
	Text string

	// CallbackToken correlates a button press to a registered action.
	// CallbackID is the transport's acknowledgment handle for the press.
	CallbackToken string
	CallbackID    string
}

type eventKind int

const (
	kindIgnored eventKind = iota
	kindCallback
	kindCommand
	kindText
)

// classify maps an event to exactly one kind.
func classify(ev *Event) eventKind {
	switch {
	case ev.CallbackToken != "":
		return kindCallback
	case strings.HasPrefix(strings.TrimSpace(ev.Text), "/"):
		return kindCommand
	case strings.TrimSpace(ev.Text) != "":
		return kindText
	default:
		return kindIgnored
	}
}

// splitCommand parses "/name arg arg" into a name and argument tokens.
// A "@botname" suffix on the command (group-chat addressing) is dropped.
func splitCommand(text string) (name string, args []string) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return "", nil
	}
	name = strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), fields[1:]
}
