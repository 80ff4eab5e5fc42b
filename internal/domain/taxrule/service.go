package taxrule

import "context"

// SettingsService manages the versioned rule sets. Settings are never
// edited in place; every change is a new version.
type SettingsService interface {
	GetCurrent(ctx context.Context) (SettingsResponse, error)
	GetVersion(ctx context.Context, version int) (SettingsResponse, error)
	Create(ctx context.Context, req CreateSettingsRequest) (SettingsResponse, error)
}
