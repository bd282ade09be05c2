// Package profile implements the profile wizard: the pure completion
// evaluator and the service that keeps the stored derived fields in sync with
// the authoritative ones.
package profile

import (
	"encoding/json"
	"math"

	"github.com/clevelhire/platform/internal/models"
)

// sectionCount is the number of equally weighted wizard sections.
const sectionCount = 4

// CompletionState is the transient result of evaluating a profile record.
type CompletionState struct {
	PersonalInfo bool `json:"personalInfo"`
	Experience   bool `json:"experience"`
	Education    bool `json:"education"`
	Skills       bool `json:"skills"`
	Percentage   int  `json:"percentage"`
}

// Evaluate derives the completion state from a profile record. It is a pure,
// total function: any well-formed record yields a full state, an all-empty
// record yields 0%.
//
// Four sections, 25 points each:
//
//	Personal Info      user id + location + phone
//	Experience         current role + years of experience + current salary
//	Education & Skills skills list + linkedin url
//	AutoApply Setup    resume url + work eligibility
//
// Presence follows the zero-as-absent policy of the predicates below, so a
// stored years_experience of 0 leaves the Experience section incomplete.
func Evaluate(p *models.Profile) CompletionState {
	st := CompletionState{
		PersonalInfo: p.UserID != "" && presentString(p.Location) && presentString(p.Phone),
		Experience:   presentString(p.CurrentRole) && presentInt(p.YearsExperience) && presentFloat(p.CurrentSalary),
		Education:    presentStringList(p.Skills) && presentString(p.LinkedinURL),
		Skills:       presentString(p.ResumeURL) && presentString(p.WorkEligibility),
	}

	completed := 0
	for _, done := range []bool{st.PersonalInfo, st.Experience, st.Education, st.Skills} {
		if done {
			completed++
		}
	}
	st.Percentage = int(math.Round(float64(completed) / sectionCount * 100))

	return st
}

// Apply copies the derived state onto the record's cached columns. Callers
// must persist the record in the same write as any authoritative change.
func (st CompletionState) Apply(p *models.Profile) {
	p.CompletionPercentage = st.Percentage
	p.PersonalInfoComplete = st.PersonalInfo
	p.ExperienceComplete = st.Experience
	p.EducationComplete = st.Education
	p.SkillsComplete = st.Skills
}

// presence predicates: nil and the type's empty value both count as absent.
// Zero is a legitimate salary or experience value, but the product treats it
// as unset; keep that policy here, in one place.

func presentString(s *string) bool {
	return s != nil && *s != ""
}

func presentInt(v *int64) bool {
	return v != nil && *v != 0
}

func presentFloat(v *float64) bool {
	return v != nil && *v != 0
}

// presentStringList reports whether a JSON-serialized string list holds at
// least one element. Malformed JSON counts as absent rather than failing the
// evaluator.
func presentStringList(s *string) bool {
	if s == nil || *s == "" {
		return false
	}

	var items []string
	if err := json.Unmarshal([]byte(*s), &items); err != nil {
		return false
	}

	return len(items) > 0
}
