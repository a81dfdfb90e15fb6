// Package llm adapts conversation turns to the OpenAI generative backend.
//
// The adapters are stateless boundary components: Complete sends a full
// role-tagged turn sequence and returns the generated reply, GenerateImage
// returns a locator for a generated asset, and ListModels enumerates the
// backend's available model identifiers.
//
// All backend failures (unreachable, error status, empty response) collapse
// into ErrGeneration so callers can map them to a single user-facing
// apology. The adapters never retry; retry policy belongs to callers.
package llm
