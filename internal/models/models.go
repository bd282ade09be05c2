package models

// Domain models matching the database schema in db/migrations/0001_init.sql

type User struct {
	ID           string  `json:"id" db:"id"`
	Email        string  `json:"email" db:"email" validate:"required,email"`
	PasswordHash string  `json:"password_hash,omitempty" db:"password_hash"`
	FirstName    string  `json:"first_name,omitempty" db:"first_name"`
	LastName     string  `json:"last_name,omitempty" db:"last_name"`
	TargetSalary float64 `json:"target_salary" db:"target_salary"`
	Created      int64   `json:"created" db:"created"`
	Updated      int64   `json:"updated" db:"updated"`
}

// AgentUser is the slim projection the agent orchestrator loads at boot.
type AgentUser struct {
	ID           string  `json:"id"`
	TargetSalary float64 `json:"target_salary"`
}

// Profile holds the wizard fields, one row per user. Every optional field is a
// pointer: nil means the user never filled it in. The completion columns are
// derived from the optional fields and rewritten on every profile update; they
// are never accepted from callers.
type Profile struct {
	ID              int64    `json:"id" db:"id"`
	UserID          string   `json:"user_id" db:"user_id"`
	Location        *string  `json:"location,omitempty" db:"location"`
	Phone           *string  `json:"phone,omitempty" db:"phone"`
	CurrentRole     *string  `json:"current_role,omitempty" db:"current_role"`
	YearsExperience *int64   `json:"years_experience,omitempty" db:"years_experience"`
	CurrentSalary   *float64 `json:"current_salary,omitempty" db:"current_salary"`
	Skills          *string  `json:"skills,omitempty" db:"skills"` // JSON-encoded string list
	LinkedinURL     *string  `json:"linkedin_url,omitempty" db:"linkedin_url"`
	ResumeURL       *string  `json:"resume_url,omitempty" db:"resume_url"`
	WorkEligibility *string  `json:"work_eligibility,omitempty" db:"work_eligibility"`

	CompletionPercentage int  `json:"completion_percentage" db:"completion_percentage"`
	PersonalInfoComplete bool `json:"personal_info_complete" db:"personal_info_complete"`
	ExperienceComplete   bool `json:"experience_complete" db:"experience_complete"`
	EducationComplete    bool `json:"education_complete" db:"education_complete"`
	SkillsComplete       bool `json:"skills_complete" db:"skills_complete"`

	Updated int64 `json:"updated" db:"updated"`
}

// AutoApplySettings is created lazily per user with IsEnabled false. The
// false->true transition only happens through the autoapply gate.
type AutoApplySettings struct {
	ID                   int64    `json:"id" db:"id"`
	UserID               string   `json:"user_id" db:"user_id"`
	IsEnabled            bool     `json:"is_enabled" db:"is_enabled"`
	MaxDailyApplications int      `json:"max_daily_applications" db:"max_daily_applications"`
	TargetRoles          *string  `json:"target_roles,omitempty" db:"target_roles"`               // JSON-encoded string list
	ExcludedCompanies    *string  `json:"excluded_companies,omitempty" db:"excluded_companies"`   // JSON-encoded string list
	PreferredLocations   *string  `json:"preferred_locations,omitempty" db:"preferred_locations"` // JSON-encoded string list
	MinSalary            *float64 `json:"min_salary,omitempty" db:"min_salary"`
	MaxSalary            *float64 `json:"max_salary,omitempty" db:"max_salary"`
	NextScanAt           *int64   `json:"next_scan_at,omitempty" db:"next_scan_at"`
	Updated              int64    `json:"updated" db:"updated"`
}
