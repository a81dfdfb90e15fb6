// Package users tracks the set of distinct users that have interacted
// with the bot. Registration is idempotent and safe under concurrent use.
package users
