// Package dedupe filters redelivered transport updates using a TTL-based,
// size-bounded cache of seen update IDs. Telegram re-sends updates after
// reconnects and webhook retries; feeding a duplicate to the dispatcher
// would duplicate conversation turns.
package dedupe
