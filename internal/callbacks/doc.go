// Package callbacks maps interactive-button tokens to actions.
//
// Tokens are bound declaratively at startup: each token either re-invokes a
// command table entry or emits a static informational reply. The registry is
// read-only after construction and safe for unsynchronized concurrent reads.
// Unknown tokens resolve to ErrUnknownCallback, which callers treat as a
// neutral condition, not a fault.
package callbacks
