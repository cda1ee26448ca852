// Package brace extracts a single JSON document from output that carries log
// text before it. The document starts at the first '{'.
package brace

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.OutputParser = (*Parser)(nil)

// Parser is the brace-anchored heuristic. It requires a document: missing or
// malformed JSON is reported as domain.ErrOutputParse, never as no match.
type Parser struct{}

// New creates a brace parser.
func New() *Parser {
	return &Parser{}
}

// Mode returns the brace heuristic tag.
func (p *Parser) Mode() domain.ParseMode {
	return domain.ParseModeBraceHeuristic
}

// Parse decodes the first JSON value starting at the first '{'.
// Text after the document is ignored.
func (p *Parser) Parse(stdout string) (domain.ParseOutcome, error) {
	trimmed := strings.TrimSpace(stdout)

	start := strings.IndexByte(trimmed, '{')
	if start == -1 {
		return domain.ParseOutcome{}, fmt.Errorf("%w: JSON start not found in output: %q",
			domain.ErrOutputParse, truncate(trimmed, 200))
	}

	var doc json.RawMessage
	dec := json.NewDecoder(strings.NewReader(trimmed[start:]))
	if err := dec.Decode(&doc); err != nil {
		return domain.ParseOutcome{}, fmt.Errorf("%w: %v", domain.ErrOutputParse, err)
	}

	return domain.ParseOutcome{
		Payload: domain.DocumentPayload(doc),
		Mode:    domain.ParseModeBraceHeuristic,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
