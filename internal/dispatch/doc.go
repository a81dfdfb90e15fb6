// Package dispatch classifies inbound chat events and routes them.
//
// # Overview
//
// The Dispatcher is the top-level entry point of the core. Every inbound
// event is classified into exactly one kind:
//
//   - Callback: an interactive-button press (callback token present)
//   - Command:  text starting with the "/" command prefix
//   - Text:     any other non-empty text, handled as a conversation turn
//
// Events with neither text nor a callback token (stickers, media) are
// silently ignored. Regardless of kind, the originating user is registered
// in the user registry.
//
// # Concurrency
//
// Free-text handling runs inside the session store's per-conversation guard
// so that "append user turn, call the backend, append assistant turn" is a
// critical section per conversation. Distinct conversations proceed fully
// in parallel. Outbound sends happen after the guard is released.
//
// # Errors
//
// The dispatcher is where the error taxonomy becomes user-facing replies:
// usage errors echo their corrective text, backend failures become one
// fixed apology (detail goes to logs only), and unknown callbacks are
// acknowledged with a neutral reply. Nothing propagates out of HandleEvent.
package dispatch
