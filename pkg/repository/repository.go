package repository

import (
	"context"

	"github.com/clevelhire/platform/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookup methods return (nil, nil) when the row does not exist.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListActiveUsers(ctx context.Context) ([]models.AgentUser, error)
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) (int64, error)
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// UpdateProfile rewrites every authoritative and derived column in one
	// statement so the completion cache can never drift from the fields.
	UpdateProfile(ctx context.Context, p *models.Profile) error
}

type AutoApplySettingsRepo interface {
	CreateSettings(ctx context.Context, s *models.AutoApplySettings) (int64, error)
	GetSettingsByUserID(ctx context.Context, userID string) (*models.AutoApplySettings, error)
	UpdateSettings(ctx context.Context, s *models.AutoApplySettings) error
}
