package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/clevelhire/platform/internal/autoapply"
	"github.com/clevelhire/platform/internal/models"
	"github.com/clevelhire/platform/internal/profile"
	"github.com/clevelhire/platform/pkg/repository"
	"github.com/qri-io/jsonschema"
)

// profileUpdateSchema validates PUT /v1/profile payloads. Derived fields are
// not listed and additionalProperties is false, so callers cannot smuggle in
// their own completion_percentage.
const profileUpdateSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"location": {"type": "string"},
		"phone": {"type": "string"},
		"current_role": {"type": "string"},
		"years_experience": {"type": "integer", "minimum": 0},
		"current_salary": {"type": "number", "minimum": 0},
		"skills": {"type": "array", "items": {"type": "string"}},
		"linkedin_url": {"type": "string"},
		"resume_url": {"type": "string"},
		"work_eligibility": {"type": "string"}
	}
}`

type ProfileHandler struct {
	userRepo repository.UserRepo
	profiles *profile.Service
	gate     *autoapply.Gate
	schema   *jsonschema.Schema
}

func NewProfileHandler(ur repository.UserRepo, ps *profile.Service, gate *autoapply.Gate) (*ProfileHandler, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(profileUpdateSchema), rs); err != nil {
		return nil, fmt.Errorf("compile profile update schema: %w", err)
	}

	return &ProfileHandler{userRepo: ur, profiles: ps, gate: gate, schema: rs}, nil
}

type profileResponse struct {
	User              userSummary               `json:"user"`
	Profile           profilePayload            `json:"profile"`
	AutoApplySettings *models.AutoApplySettings `json:"autoapply_settings,omitempty"`
}

type userSummary struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name,omitempty"`
	LastName     string  `json:"last_name,omitempty"`
	TargetSalary float64 `json:"target_salary"`
}

// profilePayload mirrors models.Profile but decodes the serialized skills list
// for consumers.
type profilePayload struct {
	models.Profile
	SkillList []string `json:"skill_list"`
}

// GetProfile returns the full record: user summary, profile with refreshed
// derived fields, and the lazily created autoapply settings.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	user, err := h.userRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to get user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeProfileErr(w, err, "failed to get profile")
		return
	}

	settings, err := h.gate.Settings(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to get autoapply settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, profileResponse{
		User: userSummary{
			ID:           user.ID,
			Email:        user.Email,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			TargetSalary: user.TargetSalary,
		},
		Profile:           toProfilePayload(p),
		AutoApplySettings: settings,
	}, http.StatusOK)
}

// UpdateProfile applies a schema-validated partial update and returns the
// authoritative record with server-side recomputed derived fields.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	keyErrs, err := h.schema.ValidateBytes(r.Context(), body)
	if err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(keyErrs) > 0 {
		http.Error(w, fmt.Sprintf("invalid profile update: %s", keyErrs[0].Error()), http.StatusBadRequest)
		return
	}

	var upd profile.Update
	if err := json.Unmarshal(body, &upd); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	p, err := h.profiles.Update(r.Context(), userID, upd)
	if err != nil {
		writeProfileErr(w, err, "failed to update profile")
		return
	}

	writeJSON(w, toProfilePayload(p), http.StatusOK)
}

type completionResponse struct {
	CompletionPercentage int                      `json:"completionPercentage"`
	IsComplete           bool                     `json:"isComplete"`
	Sections             completionSectionPayload `json:"sections"`
}

type completionSectionPayload struct {
	PersonalInfo bool `json:"personalInfo"`
	Experience   bool `json:"experience"`
	Education    bool `json:"education"`
	Skills       bool `json:"skills"`
}

// Completion reports the derived completion summary consumed by the wizard UI.
func (h *ProfileHandler) Completion(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	st, err := h.profiles.Completion(r.Context(), userID)
	if err != nil {
		writeProfileErr(w, err, "failed to get profile completion")
		return
	}

	writeJSON(w, completionResponse{
		CompletionPercentage: st.Percentage,
		IsComplete:           st.Percentage >= autoapply.EnableThreshold,
		Sections: completionSectionPayload{
			PersonalInfo: st.PersonalInfo,
			Experience:   st.Experience,
			Education:    st.Education,
			Skills:       st.Skills,
		},
	}, http.StatusOK)
}

func toProfilePayload(p *models.Profile) profilePayload {
	out := profilePayload{Profile: *p, SkillList: []string{}}
	if p.Skills != nil {
		var items []string
		if err := json.Unmarshal([]byte(*p.Skills), &items); err == nil {
			out.SkillList = items
		}
	}
	return out
}

func writeProfileErr(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, profile.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
}
