package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clevelhire/platform/internal/models"
)

func (r *SQLiteRepo) CreateSettings(ctx context.Context, s *models.AutoApplySettings) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("settings is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO autoapply_settings (user_id, is_enabled, max_daily_applications, target_roles, excluded_companies, preferred_locations, min_salary, max_salary, next_scan_at, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.IsEnabled, s.MaxDailyApplications, s.TargetRoles, s.ExcludedCompanies, s.PreferredLocations, s.MinSalary, s.MaxSalary, s.NextScanAt, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetSettingsByUserID(ctx context.Context, userID string) (*models.AutoApplySettings, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, user_id, is_enabled, max_daily_applications, target_roles, excluded_companies, preferred_locations, min_salary, max_salary, next_scan_at, updated FROM autoapply_settings WHERE user_id = ?`, userID)

	var s models.AutoApplySettings
	if err := row.Scan(&s.ID, &s.UserID, &s.IsEnabled, &s.MaxDailyApplications, &s.TargetRoles, &s.ExcludedCompanies, &s.PreferredLocations, &s.MinSalary, &s.MaxSalary, &s.NextScanAt, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

func (r *SQLiteRepo) UpdateSettings(ctx context.Context, s *models.AutoApplySettings) error {
	if s == nil {
		return fmt.Errorf("settings is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE autoapply_settings SET is_enabled = ?, max_daily_applications = ?, target_roles = ?, excluded_companies = ?, preferred_locations = ?, min_salary = ?, max_salary = ?, next_scan_at = ?, updated = ? WHERE id = ?`,
		s.IsEnabled, s.MaxDailyApplications, s.TargetRoles, s.ExcludedCompanies, s.PreferredLocations, s.MinSalary, s.MaxSalary, s.NextScanAt, now(), s.ID)
	return err
}
