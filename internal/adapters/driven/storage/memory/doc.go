// Package memory provides in-memory implementations of the driven stores.
// They back tests and runs started with --ephemeral.
package memory
