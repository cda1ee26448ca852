// Package normalisers turns raw process output into structured payloads.
//
// Each strategy lives in its own package and implements driven.OutputParser:
//
//   - strict: the whole output is one JSON document
//   - lines: one JSON object per line after a "Detected Drives:" header
//   - brace: one JSON document starting at the first '{'
//
// A Chain tries strategies in priority order. The gateway uses strict then
// lines; the detailed-health path uses brace alone.
package normalisers
