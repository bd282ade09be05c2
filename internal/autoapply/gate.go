// Package autoapply gates the privileged background-application capability on
// profile completion and owns the per-user autoapply settings row.
package autoapply

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"log/slog"

	"github.com/clevelhire/platform/internal/models"
	"github.com/clevelhire/platform/internal/profile"
	"github.com/clevelhire/platform/pkg/repository"
)

const (
	// EnableThreshold is the completion percentage required to enable
	// autoapply. Sections score in 25-point steps, so 80 is operationally
	// all four sections; the threshold is product framing, do not "fix" it.
	EnableThreshold = 80

	// NextScanDelay is how far out the first scan is scheduled on enable.
	NextScanDelay = 2 * time.Hour

	defaultMaxDailyApplications = 10
)

// NotEligibleMessage is a stable contract consumed by front-end gating UI.
const NotEligibleMessage = "Profile must be at least 80% complete to enable AutoApply"

// EnableResult is the typed outcome of TryEnable. An ineligible profile is a
// business rejection, not an error: Enabled is false and Percentage carries
// the current completion so callers can render progress.
type EnableResult struct {
	Enabled    bool
	Percentage int
	Message    string
}

// Gate authorizes the false->true transition of AutoApplySettings.IsEnabled.
type Gate struct {
	profiles *profile.Service
	settings repository.AutoApplySettingsRepo
	nowFn    func() time.Time
	logger   *slog.Logger
}

func NewGate(profiles *profile.Service, settings repository.AutoApplySettingsRepo, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{profiles: profiles, settings: settings, nowFn: time.Now, logger: logger}
}

// TryEnable re-evaluates the user's completion and, if it meets the
// threshold, persists IsEnabled and schedules the next scan. The ineligible
// path writes nothing. Calling it for an already-enabled, still-eligible user
// re-confirms Enabled and refreshes NextScanAt.
func (g *Gate) TryEnable(ctx context.Context, userID string) (EnableResult, error) {
	st, err := g.profiles.Completion(ctx, userID)
	if err != nil {
		return EnableResult{}, err
	}

	if st.Percentage < EnableThreshold {
		return EnableResult{Enabled: false, Percentage: st.Percentage, Message: NotEligibleMessage}, nil
	}

	s, err := g.Settings(ctx, userID)
	if err != nil {
		return EnableResult{}, err
	}

	next := g.nowFn().Add(NextScanDelay).UnixMilli()
	s.IsEnabled = true
	s.NextScanAt = &next
	if err := g.settings.UpdateSettings(ctx, s); err != nil {
		return EnableResult{}, fmt.Errorf("enable autoapply for %s: %w", userID, err)
	}

	g.logger.Info("autoapply enabled", slog.String("user_id", userID), slog.Int("percentage", st.Percentage))

	return EnableResult{Enabled: true, Percentage: st.Percentage, Message: "AutoApply enabled successfully"}, nil
}

// Settings returns the user's autoapply settings, creating the disabled
// default row on first access.
func (g *Gate) Settings(ctx context.Context, userID string) (*models.AutoApplySettings, error) {
	s, err := g.settings.GetSettingsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings for %s: %w", userID, err)
	}
	if s != nil {
		return s, nil
	}

	s = &models.AutoApplySettings{
		UserID:               userID,
		IsEnabled:            false,
		MaxDailyApplications: defaultMaxDailyApplications,
	}
	id, err := g.settings.CreateSettings(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("create settings for %s: %w", userID, err)
	}
	s.ID = id

	return s, nil
}

// SettingsUpdate carries a partial settings change. IsEnabled is only honored
// on the true->false direction; enabling goes through TryEnable.
type SettingsUpdate struct {
	IsEnabled            *bool    `json:"is_enabled,omitempty"`
	MaxDailyApplications *int     `json:"max_daily_applications,omitempty"`
	TargetRoles          []string `json:"target_roles,omitempty"`
	ExcludedCompanies    []string `json:"excluded_companies,omitempty"`
	PreferredLocations   []string `json:"preferred_locations,omitempty"`
	MinSalary            *float64 `json:"min_salary,omitempty"`
	MaxSalary            *float64 `json:"max_salary,omitempty"`
}

// UpdateSettings merges a partial update into the user's settings row.
func (g *Gate) UpdateSettings(ctx context.Context, userID string, upd SettingsUpdate) (*models.AutoApplySettings, error) {
	s, err := g.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.IsEnabled != nil && !*upd.IsEnabled {
		// pausing is always allowed
		s.IsEnabled = false
	}
	if upd.MaxDailyApplications != nil {
		s.MaxDailyApplications = *upd.MaxDailyApplications
	}
	if upd.TargetRoles != nil {
		if err := setList(&s.TargetRoles, upd.TargetRoles); err != nil {
			return nil, err
		}
	}
	if upd.ExcludedCompanies != nil {
		if err := setList(&s.ExcludedCompanies, upd.ExcludedCompanies); err != nil {
			return nil, err
		}
	}
	if upd.PreferredLocations != nil {
		if err := setList(&s.PreferredLocations, upd.PreferredLocations); err != nil {
			return nil, err
		}
	}
	if upd.MinSalary != nil {
		s.MinSalary = upd.MinSalary
	}
	if upd.MaxSalary != nil {
		s.MaxSalary = upd.MaxSalary
	}

	if err := g.settings.UpdateSettings(ctx, s); err != nil {
		return nil, fmt.Errorf("update settings for %s: %w", userID, err)
	}

	return s, nil
}

// Reschedule persists a NextScanAt computed by the agent loop after a due
// scan. It intentionally bypasses the partial-update merge: the loop already
// holds the current row.
func (g *Gate) Reschedule(ctx context.Context, s *models.AutoApplySettings) error {
	if err := g.settings.UpdateSettings(ctx, s); err != nil {
		return fmt.Errorf("reschedule scan for %s: %w", s.UserID, err)
	}
	return nil
}

func setList(dst **string, items []string) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serialize list: %w", err)
	}
	v := string(b)
	*dst = &v
	return nil
}
