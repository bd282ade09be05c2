package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clevelhire/platform/internal/models"
)

const profileColumns = `id, user_id, location, phone, current_role, years_experience, current_salary, skills, linkedin_url, resume_url, work_eligibility, completion_percentage, personal_info_complete, experience_complete, education_complete, skills_complete, updated`

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO profiles (user_id, location, phone, current_role, years_experience, current_salary, skills, linkedin_url, resume_url, work_eligibility, completion_percentage, personal_info_complete, experience_complete, education_complete, skills_complete, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Location, p.Phone, p.CurrentRole, p.YearsExperience, p.CurrentSalary, p.Skills, p.LinkedinURL, p.ResumeURL, p.WorkEligibility,
		p.CompletionPercentage, p.PersonalInfoComplete, p.ExperienceComplete, p.EducationComplete, p.SkillsComplete, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID)

	var p models.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Location, &p.Phone, &p.CurrentRole, &p.YearsExperience, &p.CurrentSalary, &p.Skills, &p.LinkedinURL, &p.ResumeURL, &p.WorkEligibility,
		&p.CompletionPercentage, &p.PersonalInfoComplete, &p.ExperienceComplete, &p.EducationComplete, &p.SkillsComplete, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &p, nil
}

// UpdateProfile rewrites the whole row, authoritative fields and derived
// completion columns together, so a reader can never observe them out of sync.
func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE profiles SET location = ?, phone = ?, current_role = ?, years_experience = ?, current_salary = ?, skills = ?, linkedin_url = ?, resume_url = ?, work_eligibility = ?, completion_percentage = ?, personal_info_complete = ?, experience_complete = ?, education_complete = ?, skills_complete = ?, updated = ? WHERE id = ?`,
		p.Location, p.Phone, p.CurrentRole, p.YearsExperience, p.CurrentSalary, p.Skills, p.LinkedinURL, p.ResumeURL, p.WorkEligibility,
		p.CompletionPercentage, p.PersonalInfoComplete, p.ExperienceComplete, p.EducationComplete, p.SkillsComplete, now(), p.ID)
	return err
}
