package domain

import (
	"context"
	"time"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

var EmploymentTypes = []EmploymentType{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship}

func (t EmploymentType) Valid() bool {
	for _, v := range EmploymentTypes {
		if t == v {
			return true
		}
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "ENTRY"
	ExperienceMid       ExperienceLevel = "MID"
	ExperienceSenior    ExperienceLevel = "SENIOR"
	ExperienceLead      ExperienceLevel = "LEAD"
	ExperienceExecutive ExperienceLevel = "EXECUTIVE"
)

var ExperienceLevels = []ExperienceLevel{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive}

func (l ExperienceLevel) Valid() bool {
	for _, v := range ExperienceLevels {
		if l == v {
			return true
		}
	}
	return false
}

type JobPosting struct {
	ID                  int64           `json:"id"`
	CompanyID           int64           `json:"company_id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Requirements        string          `json:"requirements"`
	Location            string          `json:"location"`
	SalaryMin           *float64        `json:"salary_min"`
	SalaryMax           *float64        `json:"salary_max"`
	EmploymentType      EmploymentType  `json:"employment_type"`
	ExperienceLevel     ExperienceLevel `json:"experience_level"`
	IsRemote            bool            `json:"is_remote"`
	IsActive            bool            `json:"is_active"`
	ApplicationDeadline time.Time       `json:"application_deadline"`
	RequiredSkills      []Skill         `json:"required_skills"`
	PreferredSkills     []Skill         `json:"preferred_skills"`
	CreatedBy           int64           `json:"created_by"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`

	// Joined data
	CompanyName    string `json:"company_name,omitempty"`
	CompanyOwnerID int64  `json:"-"`
}

// SalaryRangeValid reports whether min <= max when both bounds are set
func (j *JobPosting) SalaryRangeValid() bool {
	if j.SalaryMin == nil || j.SalaryMax == nil {
		return true
	}
	return *j.SalaryMin <= *j.SalaryMax
}

// AcceptsApplications reports whether candidates may still apply at now
func (j *JobPosting) AcceptsApplications(now time.Time) bool {
	if !j.IsActive {
		return false
	}
	return j.ApplicationDeadline.IsZero() || now.Before(j.ApplicationDeadline)
}

func (j *JobPosting) RequiredSkillIDs() []int64 {
	return skillIDs(j.RequiredSkills)
}

func (j *JobPosting) PreferredSkillIDs() []int64 {
	return skillIDs(j.PreferredSkills)
}

// JobFilter holds the optional listing predicates. Set fields compose with AND.
type JobFilter struct {
	IsActive        *bool            `json:"is_active,omitempty"`
	EmploymentType  *EmploymentType  `json:"employment_type,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
	IsRemote        *bool            `json:"is_remote,omitempty"`
	CompanyID       *int64           `json:"company_id,omitempty"`
	Search          string           `json:"search,omitempty"`
}

type JobRepository interface {
	Create(ctx context.Context, job *JobPosting) error
	GetByID(ctx context.Context, id int64) (*JobPosting, error)
	List(ctx context.Context, filter JobFilter, page Page) ([]JobPosting, int64, error)
	// ListActive returns every active posting with its skills
	ListActive(ctx context.Context) ([]JobPosting, error)
	// ListByCompanyOwner returns every posting of companies created by userID
	ListByCompanyOwner(ctx context.Context, userID int64) ([]JobPosting, error)
	Update(ctx context.Context, job *JobPosting) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	ListJobs(ctx context.Context, filter JobFilter, page Page) ([]JobPosting, int64, error)
	GetJob(ctx context.Context, id int64) (*JobPosting, error)
	CreateJob(ctx context.Context, caller Caller, job *JobPosting) error
	UpdateJob(ctx context.Context, caller Caller, job *JobPosting) error
	DeleteJob(ctx context.Context, caller Caller, id int64) error
}
