package taxrule

import "context"

// SettingsRepository defines data access for versioned tax settings.
// All methods include employerID to prevent cross-employer data access.
type SettingsRepository interface {
	GetCurrent(ctx context.Context, employerID string) (Settings, error)
	GetByVersion(ctx context.Context, employerID string, version int) (Settings, error)
	Create(ctx context.Context, settings Settings) (Settings, error)
}
