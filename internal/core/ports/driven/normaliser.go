package driven

import "github.com/custodia-labs/drivegate/internal/core/domain"

// OutputParser is one strategy for turning raw stdout into a payload.
// Parsers are pure: the same input always yields the same outcome.
type OutputParser interface {
	// Mode returns the tag recorded on outcomes this parser produces.
	Mode() domain.ParseMode

	// Parse returns domain.ErrNoMatch when the strategy does not apply.
	// Any other error is a hard failure that stops the chain.
	Parse(stdout string) (domain.ParseOutcome, error)
}
