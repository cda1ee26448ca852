package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// Ensure ModuleRecommender implements the interface.
var _ driven.Recommender = (*ModuleRecommender)(nil)

// ModuleRecommender forwards metrics to the executable's ai module as a
// single compact JSON argument.
type ModuleRecommender struct {
	gateway *Gateway
}

// NewModuleRecommender creates a recommender that invokes through gateway.
func NewModuleRecommender(gateway *Gateway) *ModuleRecommender {
	return &ModuleRecommender{gateway: gateway}
}

// Recommend returns the trimmed stdout of the ai module. A JSON object with
// a "recommendation" field is unwrapped.
func (r *ModuleRecommender) Recommend(ctx context.Context, metrics domain.DriveRecord) (string, error) {
	doc, err := json.Marshal(metricsDocument{
		DriveName:       metrics.DriveName,
		Temperature:     floatField(metrics.Temperature),
		ReadErrorCount:  metrics.ReadErrorCount,
		WriteErrorCount: metrics.WriteErrorCount,
		OverallHealth:   floatField(metrics.OverallHealth),
		SmartStatus:     metrics.SmartStatus,
	})
	if err != nil {
		return "", fmt.Errorf("encoding metrics: %w", err)
	}

	result, err := r.gateway.run(ctx, domain.CapabilityRecommendation, map[string]string{
		ParamMetrics: string(doc),
	})
	if err != nil {
		return "", err
	}

	if result.Payload.Kind() == domain.PayloadDocument {
		var wrapped domain.Recommendation
		if err := result.Payload.Decode(&wrapped); err == nil && wrapped.Text != "" {
			return wrapped.Text, nil
		}
	}
	return strings.TrimSpace(result.Stdout), nil
}

// metricsDocument is the argument the ai module receives. Float fields keep
// a fractional part, so 30 is sent as 30.0.
type metricsDocument struct {
	DriveName       string     `json:"driveName"`
	Temperature     floatField `json:"temperature"`
	ReadErrorCount  int        `json:"readErrorCount"`
	WriteErrorCount int        `json:"writeErrorCount"`
	OverallHealth   floatField `json:"overallHealth"`
	SmartStatus     string     `json:"smartStatus"`
}

// floatField encodes like a float64 but always with a decimal point.
type floatField float64

// MarshalJSON implements json.Marshaler.
func (f floatField) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported float value %v", v)
	}
	b := strconv.AppendFloat(nil, v, 'f', -1, 64)
	if !bytes.ContainsRune(b, '.') {
		b = append(b, '.', '0')
	}
	return b, nil
}
