package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"log/slog"

	"github.com/clevelhire/platform/internal/models"
	"github.com/clevelhire/platform/pkg/repository"
)

// ErrUserNotFound is returned when an operation references a user id with no
// account behind it.
var ErrUserNotFound = errors.New("user not found")

// Service owns reads and writes of profile records. Every write recomputes the
// derived completion columns from the authoritative fields before persisting.
type Service struct {
	users    repository.UserRepo
	profiles repository.ProfileRepo
	logger   *slog.Logger
}

func NewService(users repository.UserRepo, profiles repository.ProfileRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, profiles: profiles, logger: logger}
}

// Update carries a partial profile change. Nil fields are left untouched;
// Skills is decoded from the request as a list and serialized here.
type Update struct {
	Location        *string  `json:"location,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	CurrentRole     *string  `json:"current_role,omitempty"`
	YearsExperience *int64   `json:"years_experience,omitempty"`
	CurrentSalary   *float64 `json:"current_salary,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	LinkedinURL     *string  `json:"linkedin_url,omitempty"`
	ResumeURL       *string  `json:"resume_url,omitempty"`
	WorkEligibility *string  `json:"work_eligibility,omitempty"`
}

// Get returns the user's profile, creating an empty one on first access. If
// the stored derived columns are stale relative to the authoritative fields,
// they are refreshed and persisted before returning.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	p, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile for %s: %w", userID, err)
	}
	if p == nil {
		p = &models.Profile{UserID: userID}
		Evaluate(p).Apply(p)
		id, err := s.profiles.CreateProfile(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("create profile for %s: %w", userID, err)
		}
		p.ID = id
		return p, nil
	}

	if st := Evaluate(p); st.Percentage != p.CompletionPercentage ||
		st.PersonalInfo != p.PersonalInfoComplete || st.Experience != p.ExperienceComplete ||
		st.Education != p.EducationComplete || st.Skills != p.SkillsComplete {
		st.Apply(p)
		if err := s.profiles.UpdateProfile(ctx, p); err != nil {
			return nil, fmt.Errorf("refresh derived fields for %s: %w", userID, err)
		}
		s.logger.Info("refreshed stale completion cache", slog.String("user_id", userID), slog.Int("percentage", st.Percentage))
	}

	return p, nil
}

// Update merges a partial update into the user's profile, recomputes the
// derived completion fields and persists everything in a single write.
func (s *Service) Update(ctx context.Context, userID string, upd Update) (*models.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Location != nil {
		p.Location = upd.Location
	}
	if upd.Phone != nil {
		p.Phone = upd.Phone
	}
	if upd.CurrentRole != nil {
		p.CurrentRole = upd.CurrentRole
	}
	if upd.YearsExperience != nil {
		p.YearsExperience = upd.YearsExperience
	}
	if upd.CurrentSalary != nil {
		p.CurrentSalary = upd.CurrentSalary
	}
	if upd.Skills != nil {
		b, err := json.Marshal(upd.Skills)
		if err != nil {
			return nil, fmt.Errorf("serialize skills: %w", err)
		}
		skills := string(b)
		p.Skills = &skills
	}
	if upd.LinkedinURL != nil {
		p.LinkedinURL = upd.LinkedinURL
	}
	if upd.ResumeURL != nil {
		p.ResumeURL = upd.ResumeURL
	}
	if upd.WorkEligibility != nil {
		p.WorkEligibility = upd.WorkEligibility
	}

	Evaluate(p).Apply(p)

	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile for %s: %w", userID, err)
	}

	return p, nil
}

// Completion evaluates the user's current record without writing anything
// beyond the lazy profile creation Get performs.
func (s *Service) Completion(ctx context.Context, userID string) (CompletionState, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return CompletionState{}, err
	}

	return Evaluate(p), nil
}
