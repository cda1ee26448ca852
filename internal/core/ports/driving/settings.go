package driving

import "github.com/custodia-labs/drivegate/internal/core/domain"

// SettingsService manages gateway settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults per key.
	Get() (*domain.GatewaySettings, error)

	// Save persists settings.
	Save(settings *domain.GatewaySettings) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.GatewaySettings
}
