package profile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/clevelhire/platform/internal/models"
	"github.com/clevelhire/platform/internal/profile"
	"github.com/clevelhire/platform/pkg/repository/mock"
)

func newService(m *mock.Mocks) *profile.Service {
	return profile.NewService(m.UserRepo, m.ProfileRepo, nil)
}

func TestService_Get_UnknownUser(t *testing.T) {
	m := mock.NewMocks()
	svc := newService(m)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, profile.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestService_Get_LazyCreate(t *testing.T) {
	m := mock.NewMocks()
	m.UserRepo.Stored = &models.User{ID: "u1", Email: "u1@example.com"}
	svc := newService(m)

	p, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected created profile to get an id")
	}
	if p.CompletionPercentage != 0 {
		t.Fatalf("fresh profile should be 0%% complete, got %d", p.CompletionPercentage)
	}
	if m.ProfileRepo.CreateCalls != 1 {
		t.Fatalf("expected exactly one create, got %d", m.ProfileRepo.CreateCalls)
	}

	// second Get must reuse the stored row
	if _, err := svc.Get(context.Background(), "u1"); err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if m.ProfileRepo.CreateCalls != 1 {
		t.Fatalf("expected no second create, got %d", m.ProfileRepo.CreateCalls)
	}
}

func TestService_Get_RefreshesStaleDerivedFields(t *testing.T) {
	m := mock.NewMocks()
	m.UserRepo.Stored = &models.User{ID: "u1", Email: "u1@example.com"}
	// stored record claims 0% but personal info is actually filled in
	m.ProfileRepo.Stored = &models.Profile{
		ID:       1,
		UserID:   "u1",
		Location: strPtr("NY"),
		Phone:    strPtr("555"),
	}
	svc := newService(m)

	p, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.CompletionPercentage != 25 || !p.PersonalInfoComplete {
		t.Fatalf("expected refreshed cache 25%%/personal=true, got %d/%v", p.CompletionPercentage, p.PersonalInfoComplete)
	}
	if m.ProfileRepo.UpdateCalls != 1 {
		t.Fatalf("expected the refresh to persist, got %d updates", m.ProfileRepo.UpdateCalls)
	}
	if m.ProfileRepo.Stored.CompletionPercentage != 25 {
		t.Fatalf("persisted cache still stale: %d", m.ProfileRepo.Stored.CompletionPercentage)
	}
}

func TestService_Update_MergesAndRecomputes(t *testing.T) {
	m := mock.NewMocks()
	m.UserRepo.Stored = &models.User{ID: "u1", Email: "u1@example.com"}
	m.ProfileRepo.Stored = &models.Profile{
		ID:       1,
		UserID:   "u1",
		Location: strPtr("NY"),
		Phone:    strPtr("555"),

		CompletionPercentage: 25,
		PersonalInfoComplete: true,
	}
	svc := newService(m)

	p, err := svc.Update(context.Background(), "u1", profile.Update{
		CurrentRole:     strPtr("Eng"),
		YearsExperience: intPtr(8),
		CurrentSalary:   fltPtr(150000),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if p.Location == nil || *p.Location != "NY" {
		t.Fatalf("untouched field lost: %+v", p)
	}
	if p.CompletionPercentage != 50 || !p.ExperienceComplete {
		t.Fatalf("expected 50%%/experience=true after update, got %d/%v", p.CompletionPercentage, p.ExperienceComplete)
	}
	if m.ProfileRepo.Stored.CompletionPercentage != 50 {
		t.Fatalf("derived fields not persisted with the update")
	}
}

func TestService_Update_SerializesSkills(t *testing.T) {
	m := mock.NewMocks()
	m.UserRepo.Stored = &models.User{ID: "u1", Email: "u1@example.com"}
	svc := newService(m)

	p, err := svc.Update(context.Background(), "u1", profile.Update{
		Skills:      []string{"Go", "SQL"},
		LinkedinURL: strPtr("https://linkedin.com/in/u1"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Skills == nil || *p.Skills != `["Go","SQL"]` {
		t.Fatalf("expected serialized skills, got %v", p.Skills)
	}
	if !p.EducationComplete || p.CompletionPercentage != 25 {
		t.Fatalf("expected education section complete at 25%%, got %+v", p)
	}
}

func TestService_Update_StoreFailureSurfaces(t *testing.T) {
	m := mock.NewMocks()
	m.UserRepo.Stored = &models.User{ID: "u1", Email: "u1@example.com"}
	m.ProfileRepo.Stored = &models.Profile{ID: 1, UserID: "u1"}
	m.ProfileRepo.UpdateErr = fmt.Errorf("store down")
	svc := newService(m)

	if _, err := svc.Update(context.Background(), "u1", profile.Update{Location: strPtr("NY")}); err == nil {
		t.Fatalf("expected store error to surface")
	}
}

func TestService_Completion_MatchesScenario(t *testing.T) {
	m := mock.NewMocks()
	m.UserRepo.Stored = &models.User{ID: "u1", Email: "u1@example.com"}
	m.ProfileRepo.Stored = func() *models.Profile {
		p := fullProfile()
		p.ID = 1
		p.ResumeURL = nil
		p.WorkEligibility = nil
		return p
	}()
	svc := newService(m)

	st, err := svc.Completion(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Completion: %v", err)
	}
	want := profile.CompletionState{PersonalInfo: true, Experience: true, Education: true, Percentage: 75}
	if st != want {
		t.Fatalf("Completion = %+v, want %+v", st, want)
	}
}
