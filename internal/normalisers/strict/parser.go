// Package strict parses process output that is exactly one JSON document.
package strict

import (
	"encoding/json"
	"strings"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.OutputParser = (*Parser)(nil)

// Parser accepts output whose trimmed text is a single JSON object or array.
// An object becomes a document payload; an array becomes a list payload.
type Parser struct{}

// New creates a strict parser.
func New() *Parser {
	return &Parser{}
}

// Mode returns the strict parse tag.
func (p *Parser) Mode() domain.ParseMode {
	return domain.ParseModeStrict
}

// Parse returns domain.ErrNoMatch unless the whole output is valid JSON.
func (p *Parser) Parse(stdout string) (domain.ParseOutcome, error) {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return domain.ParseOutcome{}, domain.ErrNoMatch
	}

	data := []byte(trimmed)
	switch trimmed[0] {
	case '{':
		if !json.Valid(data) {
			return domain.ParseOutcome{}, domain.ErrNoMatch
		}
		return domain.ParseOutcome{
			Payload: domain.DocumentPayload(data),
			Mode:    domain.ParseModeStrict,
		}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return domain.ParseOutcome{}, domain.ErrNoMatch
		}
		return domain.ParseOutcome{
			Payload: domain.ListPayload(items),
			Mode:    domain.ParseModeStrict,
		}, nil
	default:
		return domain.ParseOutcome{}, domain.ErrNoMatch
	}
}
