package api

import (
	"encoding/json"
	"net/http"

	"github.com/clevelhire/platform/internal/pricing"
)

// PlatformHandler serves the marketing surface: pricing quotes plus the
// canned resume-tailor, dashboard and agent-status payloads the front end
// renders while those pipelines are built out.
type PlatformHandler struct{}

type pricingRequest struct {
	TargetSalary float64            `json:"targetSalary"`
	Commitment   pricing.Commitment `json:"commitment"`
}

func (h *PlatformHandler) PricingCalculate(w http.ResponseWriter, r *http.Request) {
	var req pricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.TargetSalary <= 0 {
		http.Error(w, "targetSalary must be a positive number", http.StatusBadRequest)
		return
	}
	if req.Commitment == "" {
		req.Commitment = pricing.Weekly
	}

	writeJSON(w, pricing.Calculate(req.TargetSalary, req.Commitment), http.StatusOK)
}

type resumeTailorRequest struct {
	ResumeID      string `json:"resumeId"`
	JobPostingURL string `json:"jobPostingUrl"`
}

func (h *PlatformHandler) ResumeTailor(w http.ResponseWriter, r *http.Request) {
	var req resumeTailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"success":    true,
		"message":    "Resume tailored with 3-layer optimization",
		"matchScore": 0.92,
		"optimizations": map[string]any{
			"keywordsAdded":     15,
			"structureImproved": true,
			"culturalAlignment": "matched",
		},
		"resumeId":      req.ResumeID,
		"jobPostingUrl": req.JobPostingURL,
	}, http.StatusOK)
}

func (h *PlatformHandler) DashboardMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"applicationsThisWeek": 25,
		"responseRate":         0.24,
		"interviewsScheduled":  3,
		"daysToTarget":         45,
		"agentStatus":          "working",
		"lastAgentAction":      "2 hours ago",
	}, http.StatusOK)
}

func (h *PlatformHandler) AgentStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":            "active",
		"mode":              "balanced",
		"currentFocus":      "applications",
		"decisionsToday":    12,
		"applicationsToday": 5,
		"lastDecision":      "30 minutes ago",
		"nextCheck":         "in 30 minutes",
	}, http.StatusOK)
}
