// Package session provides the in-memory conversation store.
//
// # Overview
//
// A conversation is identified by its transport chat ID and owns an ordered
// sequence of role-tagged turns. Conversations are created lazily on first
// append and live for the process lifetime.
//
// # Concurrency
//
// Append and Snapshot are individually safe for concurrent use. On top of
// that, Guard exposes a lazily created per-conversation mutex so callers can
// serialize a whole exchange (append user turn, call the backend, append
// assistant turn) without blocking unrelated conversations. See the
// dispatch package for the canonical use.
//
// # Trimming
//
// By default history grows without bound. A MaxTurns option enables a
// drop-oldest trimming policy applied on append.
package session
