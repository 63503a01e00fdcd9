package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

// Application status constants
const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusReviewed    ApplicationStatus = "REVIEWED"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterviewed ApplicationStatus = "INTERVIEWED"
	ApplicationStatusOffered     ApplicationStatus = "OFFERED"
	ApplicationStatusAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusInterviewed,
	ApplicationStatusOffered,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

// forward pipeline order; REJECTED and WITHDRAWN sit outside it
var applicationPipeline = map[ApplicationStatus]int{
	ApplicationStatusPending:     0,
	ApplicationStatusReviewed:    1,
	ApplicationStatusShortlisted: 2,
	ApplicationStatusInterviewed: 3,
	ApplicationStatusOffered:     4,
	ApplicationStatusAccepted:    5,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) Terminal() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is reachable from s in the forward-only graph:
// one step along the pipeline, or REJECTED/WITHDRAWN from any non-terminal state.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if !s.Valid() || !next.Valid() || s.Terminal() {
		return false
	}
	if next == ApplicationStatusRejected || next == ApplicationStatusWithdrawn {
		return true
	}
	from, ok := applicationPipeline[s]
	if !ok {
		return false
	}
	to, ok := applicationPipeline[next]
	return ok && to == from+1
}

// Application is a candidate's application to one job. (JobID, ApplicantID) is unique.
type Application struct {
	ID          int64             `json:"id"`
	JobID       int64             `json:"job_id"`
	ApplicantID int64             `json:"applicant_id"`
	CoverLetter string            `json:"cover_letter"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Joined data for list responses
	JobTitle          string `json:"job_title,omitempty"`
	CompanyName       string `json:"company_name,omitempty"`
	ApplicantUsername string `json:"applicant_username,omitempty"`
	ApplicantEmail    string `json:"applicant_email,omitempty"`
	JobOwnerID        int64  `json:"-"`
}

// ApplicationFilter narrows an application listing inside a RecordScope
type ApplicationFilter struct {
	Status *ApplicationStatus
	JobID  *int64
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create returns ErrConflict when (job, applicant) already exists
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	List(ctx context.Context, scope RecordScope, filter ApplicationFilter, page Page) ([]Application, int64, error)
	ListAll(ctx context.Context, scope RecordScope, filter ApplicationFilter) ([]Application, error)
	CheckExists(ctx context.Context, jobID, applicantID int64) (bool, error)
	// UpdateStatus sets status and updated_at, returning the new updated_at
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) (time.Time, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	ApplyToJob(ctx context.Context, caller Caller, jobID int64, coverLetter string) (*Application, error)

	// Scoped operations
	ListApplications(ctx context.Context, caller Caller, filter ApplicationFilter, page Page) ([]Application, int64, error)
	GetApplication(ctx context.Context, caller Caller, id int64) (*Application, error)

	// Employer operations
	UpdateApplicationStatus(ctx context.Context, caller Caller, id int64, status ApplicationStatus) (*Application, error)
	ExportApplications(ctx context.Context, caller Caller, filter ApplicationFilter) ([]byte, string, error)
}
