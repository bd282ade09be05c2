package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clevelhire/platform/api"
	"github.com/clevelhire/platform/internal/autoapply"
	"github.com/clevelhire/platform/internal/models"
	"github.com/clevelhire/platform/internal/profile"
	"github.com/clevelhire/platform/pkg/repository/mock"
)

func strPtr(s string) *string   { return &s }
func intPtr(v int64) *int64     { return &v }
func fltPtr(v float64) *float64 { return &v }

func newProfileFixture(t *testing.T, m *mock.Mocks) *api.ProfileHandler {
	t.Helper()
	profiles := profile.NewService(m.UserRepo, m.ProfileRepo, nil)
	gate := autoapply.NewGate(profiles, m.SettingsRepo, nil)
	h, err := api.NewProfileHandler(m.UserRepo, profiles, gate)
	if err != nil {
		t.Fatalf("new profile handler: %v", err)
	}
	return h
}

func authedRequest(method, path, userID string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	ctx := context.WithValue(req.Context(), api.CtxUserID, userID)
	return req.WithContext(ctx)
}

func seedUser(m *mock.Mocks) {
	m.UserRepo.Stored = &models.User{
		ID:           "u1",
		Email:        "alice@example.com",
		FirstName:    "Alice",
		TargetSalary: 150000,
	}
}

func TestProfileHandler_GetProfile(t *testing.T) {
	m := mock.NewMocks()
	seedUser(m)
	skills := `["Go","SQL"]`
	p := &models.Profile{ID: 1, UserID: "u1", Location: strPtr("NY"), Skills: &skills}
	profile.Evaluate(p).Apply(p)
	m.ProfileRepo.Stored = p
	h := newProfileFixture(t, m)

	w := httptest.NewRecorder()
	h.GetProfile(w, authedRequest(http.MethodGet, "/v1/profile", "u1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		User struct {
			ID           string  `json:"id"`
			Email        string  `json:"email"`
			TargetSalary float64 `json:"target_salary"`
		} `json:"user"`
		Profile struct {
			SkillList []string `json:"skill_list"`
		} `json:"profile"`
		Settings *models.AutoApplySettings `json:"autoapply_settings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.User.ID != "u1" || resp.User.Email != "alice@example.com" {
		t.Fatalf("unexpected user summary: %+v", resp.User)
	}
	if resp.User.TargetSalary != 150000 {
		t.Fatalf("expected target salary 150000, got %v", resp.User.TargetSalary)
	}
	if len(resp.Profile.SkillList) != 2 || resp.Profile.SkillList[0] != "Go" {
		t.Fatalf("unexpected skill list: %v", resp.Profile.SkillList)
	}
	if resp.Settings == nil || resp.Settings.IsEnabled {
		t.Fatalf("expected lazily created disabled settings, got %+v", resp.Settings)
	}
}

func TestProfileHandler_GetProfile_UnknownUser(t *testing.T) {
	m := mock.NewMocks()
	h := newProfileFixture(t, m)

	w := httptest.NewRecorder()
	h.GetProfile(w, authedRequest(http.MethodGet, "/v1/profile", "ghost", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	m := mock.NewMocks()
	seedUser(m)
	h := newProfileFixture(t, m)

	body := map[string]any{
		"location": "Austin, TX",
		"phone":    "555-0100",
		"skills":   []string{"Go", "Kubernetes"},
	}
	b, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/v1/profile", "u1", bytes.NewReader(b)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		CompletionPercentage int      `json:"completion_percentage"`
		PersonalInfoComplete bool     `json:"personal_info_complete"`
		SkillList            []string `json:"skill_list"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.PersonalInfoComplete {
		t.Fatalf("expected personal info complete after update")
	}
	if resp.CompletionPercentage != 25 {
		t.Fatalf("expected 25%% completion, got %d", resp.CompletionPercentage)
	}
	if len(resp.SkillList) != 2 {
		t.Fatalf("unexpected skill list: %v", resp.SkillList)
	}
	if m.ProfileRepo.Stored == nil || m.ProfileRepo.Stored.Skills == nil {
		t.Fatalf("skills not persisted")
	}
}

func TestProfileHandler_UpdateProfile_RejectsUnknownField(t *testing.T) {
	m := mock.NewMocks()
	seedUser(m)
	h := newProfileFixture(t, m)

	// derived fields are server-owned, the schema refuses them
	body := []byte(`{"completion_percentage": 100}`)
	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/v1/profile", "u1", bytes.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
	if m.ProfileRepo.UpdateCalls != 0 {
		t.Fatalf("rejected update must not write")
	}
}

func TestProfileHandler_UpdateProfile_RejectsWrongType(t *testing.T) {
	m := mock.NewMocks()
	seedUser(m)
	h := newProfileFixture(t, m)

	body := []byte(`{"years_experience": "five"}`)
	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/v1/profile", "u1", bytes.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestProfileHandler_Completion(t *testing.T) {
	m := mock.NewMocks()
	seedUser(m)
	skills := `["Go"]`
	p := &models.Profile{
		ID:              1,
		UserID:          "u1",
		Location:        strPtr("NY"),
		Phone:           strPtr("555"),
		CurrentRole:     strPtr("Engineer"),
		YearsExperience: intPtr(7),
		CurrentSalary:   fltPtr(140000),
		Skills:          &skills,
		LinkedinURL:     strPtr("https://linkedin.com/in/alice"),
	}
	profile.Evaluate(p).Apply(p)
	m.ProfileRepo.Stored = p
	h := newProfileFixture(t, m)

	w := httptest.NewRecorder()
	h.Completion(w, authedRequest(http.MethodGet, "/v1/profile/completion", "u1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		CompletionPercentage int  `json:"completionPercentage"`
		IsComplete           bool `json:"isComplete"`
		Sections             struct {
			PersonalInfo bool `json:"personalInfo"`
			Experience   bool `json:"experience"`
			Education    bool `json:"education"`
			Skills       bool `json:"skills"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.CompletionPercentage != 75 {
		t.Fatalf("expected 75%%, got %d", resp.CompletionPercentage)
	}
	if resp.IsComplete {
		t.Fatalf("75%% must not count as complete")
	}
	if !resp.Sections.PersonalInfo || !resp.Sections.Experience || !resp.Sections.Education || resp.Sections.Skills {
		t.Fatalf("unexpected section flags: %+v", resp.Sections)
	}
}
