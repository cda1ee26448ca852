package driven

import "github.com/custodia-labs/drivegate/internal/core/domain"

// OutputNormaliser runs an ordered chain of parser strategies.
// The first strategy that does not return domain.ErrNoMatch wins.
type OutputNormaliser interface {
	// Normalise parses stdout. When every strategy reports no match the
	// outcome is an empty payload tagged domain.ParseModeNone.
	Normalise(stdout string) (domain.ParseOutcome, error)

	// Modes returns the strategy tags in priority order.
	Modes() []domain.ParseMode
}
