package normalisers

import (
	"errors"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
	"github.com/custodia-labs/drivegate/internal/logger"
	"github.com/custodia-labs/drivegate/internal/normalisers/brace"
	"github.com/custodia-labs/drivegate/internal/normalisers/lines"
	"github.com/custodia-labs/drivegate/internal/normalisers/strict"
)

// Ensure Chain implements the interface.
var _ driven.OutputNormaliser = (*Chain)(nil)

// Chain runs parser strategies in priority order.
type Chain struct {
	parsers []driven.OutputParser
}

// NewChain creates a chain over the given strategies, highest priority first.
func NewChain(parsers ...driven.OutputParser) *Chain {
	return &Chain{parsers: parsers}
}

// NewGatewayChain returns the chain used for module invocations:
// strict JSON, then the line heuristic.
func NewGatewayChain(listHeader string) *Chain {
	return NewChain(strict.New(), lines.New(listHeader))
}

// NewDocumentChain returns the chain used where exactly one document is
// required: the brace heuristic only.
func NewDocumentChain() *Chain {
	return NewChain(brace.New())
}

// Normalise returns the first outcome that is not domain.ErrNoMatch.
func (c *Chain) Normalise(stdout string) (domain.ParseOutcome, error) {
	for _, p := range c.parsers {
		outcome, err := p.Parse(stdout)
		if errors.Is(err, domain.ErrNoMatch) {
			logger.Debug("normaliser %s: no match", p.Mode())
			continue
		}
		if err != nil {
			return domain.ParseOutcome{}, err
		}
		if outcome.Skipped > 0 {
			logger.Warn("normaliser %s: skipped %d unparseable lines", outcome.Mode, outcome.Skipped)
		}
		return outcome, nil
	}

	return domain.ParseOutcome{
		Payload: domain.EmptyPayload(),
		Mode:    domain.ParseModeNone,
	}, nil
}

// Modes returns the strategy tags in priority order.
func (c *Chain) Modes() []domain.ParseMode {
	modes := make([]domain.ParseMode, len(c.parsers))
	for i, p := range c.parsers {
		modes[i] = p.Mode()
	}
	return modes
}
