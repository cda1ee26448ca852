// Package domain holds the gateway's vocabulary: capabilities and the
// module names they map to, invocation requests and results, normalised
// payloads, drive records, stream sessions, settings and the error
// taxonomy every adapter classifies against.
//
// It imports the standard library only.
package domain
