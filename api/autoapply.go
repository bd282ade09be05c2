package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clevelhire/platform/internal/autoapply"
	"github.com/clevelhire/platform/internal/models"
	"github.com/clevelhire/platform/internal/profile"
)

type AutoApplyHandler struct {
	gate *autoapply.Gate
}

func NewAutoApplyHandler(gate *autoapply.Gate) *AutoApplyHandler {
	return &AutoApplyHandler{gate: gate}
}

// settingsResponse decodes the serialized list columns for consumers.
type settingsResponse struct {
	ID                   int64    `json:"id"`
	UserID               string   `json:"user_id"`
	IsEnabled            bool     `json:"is_enabled"`
	MaxDailyApplications int      `json:"max_daily_applications"`
	TargetRoles          []string `json:"target_roles"`
	ExcludedCompanies    []string `json:"excluded_companies"`
	PreferredLocations   []string `json:"preferred_locations"`
	MinSalary            *float64 `json:"min_salary,omitempty"`
	MaxSalary            *float64 `json:"max_salary,omitempty"`
	NextScanAt           *string  `json:"next_scan_at,omitempty"`
}

func (h *AutoApplyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	s, err := h.gate.Settings(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to get autoapply settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toSettingsResponse(s), http.StatusOK)
}

func (h *AutoApplyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var upd autoapply.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	s, err := h.gate.UpdateSettings(r.Context(), userID, upd)
	if err != nil {
		http.Error(w, "failed to update autoapply settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toSettingsResponse(s), http.StatusOK)
}

type enableResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Enable runs the completion gate. Ineligible profiles get a 400 with the
// stable gating message the front end renders next to the progress bar.
func (h *AutoApplyHandler) Enable(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	res, err := h.gate.TryEnable(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to enable autoapply", http.StatusInternalServerError)
		return
	}

	if !res.Enabled {
		writeJSON(w, enableResponse{Success: false, Message: res.Message}, http.StatusBadRequest)
		return
	}

	writeJSON(w, enableResponse{Success: true, Message: res.Message}, http.StatusOK)
}

func toSettingsResponse(s *models.AutoApplySettings) settingsResponse {
	out := settingsResponse{
		ID:                   s.ID,
		UserID:               s.UserID,
		IsEnabled:            s.IsEnabled,
		MaxDailyApplications: s.MaxDailyApplications,
		TargetRoles:          decodeList(s.TargetRoles),
		ExcludedCompanies:    decodeList(s.ExcludedCompanies),
		PreferredLocations:   decodeList(s.PreferredLocations),
		MinSalary:            s.MinSalary,
		MaxSalary:            s.MaxSalary,
	}
	if s.NextScanAt != nil {
		t := time.UnixMilli(*s.NextScanAt).UTC().Format(time.RFC3339)
		out.NextScanAt = &t
	}
	return out
}

func decodeList(s *string) []string {
	if s == nil || *s == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(*s), &items); err != nil {
		return []string{}
	}
	return items
}
