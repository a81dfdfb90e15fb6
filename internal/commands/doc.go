// Package commands implements the structured command table.
//
// # Overview
//
// A Router maps command names to handlers. Each handler receives the parsed
// argument tokens plus conversation context and produces a Reply: text, an
// image locator, or a listing. The table is explicit and built once at
// startup; new commands are additive registrations.
//
// # Commands
//
//	start   welcome text plus the interactive button set
//	help    fixed help text
//	models  enumerate backend model identifiers
//	image   generate an image: image <prompt...> [size]
//	users   count of distinct users seen
//
// # Errors
//
// Malformed invocations return *UsageError with corrective text; these are
// user-visible and not system faults. Backend failures surface as
// llm.ErrGeneration and are translated by the dispatcher.
package commands
