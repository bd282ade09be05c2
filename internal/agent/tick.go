package agent

import (
	"context"
	"time"

	"log/slog"

	"github.com/clevelhire/platform/internal/autoapply"
	"github.com/clevelhire/platform/internal/models"
	"github.com/clevelhire/platform/internal/profile"
)

// NewCareerTick builds the default per-user unit of work: re-read the user's
// completion state and autoapply settings and decide whether a scan is due.
// The action itself is a stub; application submission lives outside this
// service.
func NewCareerTick(profiles *profile.Service, gate *autoapply.Gate, logger *slog.Logger) TickFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, user models.AgentUser) error {
		st, err := profiles.Completion(ctx, user.ID)
		if err != nil {
			return err
		}

		settings, err := gate.Settings(ctx, user.ID)
		if err != nil {
			return err
		}

		if !settings.IsEnabled {
			logger.Debug("agent idle, autoapply disabled",
				slog.String("user_id", user.ID),
				slog.Int("completion", st.Percentage),
			)
			return nil
		}

		now := time.Now().UTC().UnixMilli()
		if settings.NextScanAt != nil && *settings.NextScanAt > now {
			return nil
		}

		// TODO: hand off to the application-scan pipeline once it exists.
		logger.Info("agent scan due",
			slog.String("user_id", user.ID),
			slog.Int("completion", st.Percentage),
			slog.Int("max_daily_applications", settings.MaxDailyApplications),
		)

		next := now + autoapply.NextScanDelay.Milliseconds()
		settings.NextScanAt = &next
		return gate.Reschedule(ctx, settings)
	}
}
