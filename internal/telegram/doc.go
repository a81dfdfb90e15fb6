// Package telegram is the transport layer binding the core to Telegram.
//
// # Overview
//
// The package has two halves:
//
//   - Transport: receives updates (long polling or webhook, per config),
//     filters redeliveries through the dedupe cache, converts each update
//     into a transport-neutral dispatch.Event, and hands it to the
//     dispatcher. One goroutine per update; same-conversation ordering is
//     the session store's job, not the transport's.
//
//   - Sender: delivers dispatcher outcomes back to Telegram. Text replies
//     are rendered from Markdown to Telegram's HTML subset (falling back to
//     plain text if Telegram rejects the markup), image replies are sent by
//     URL or as an uploaded payload for data URIs, and button presses are
//     acknowledged to clear the client's loading state.
//
// In webhook mode the Transport also runs a small HTTP server with a
// /health endpoint and verifies Telegram's secret token header.
package telegram
