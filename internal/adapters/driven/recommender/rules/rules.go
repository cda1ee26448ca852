// Package rules evaluates the drive recommendation contract in process.
//
// Health is checked before temperature: a drive below the health threshold
// is flagged for replacement however cool it runs.
package rules

import (
	"context"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// Ensure Recommender implements the interface.
var _ driven.Recommender = (*Recommender)(nil)

// Recommender is the built-in recommendation backend.
type Recommender struct{}

// New creates a rule-based recommender.
func New() *Recommender {
	return &Recommender{}
}

// Recommend returns the recommendation text for metrics.
func (r *Recommender) Recommend(_ context.Context, metrics domain.DriveRecord) (string, error) {
	return Evaluate(metrics), nil
}

// Evaluate applies the rules.
func Evaluate(metrics domain.DriveRecord) string {
	switch {
	case metrics.OverallHealth < domain.LowHealthThreshold:
		return domain.RecommendReplace
	case metrics.Temperature > domain.HighTemperatureThreshold:
		return domain.RecommendBackup
	default:
		return domain.RecommendHealthy
	}
}
