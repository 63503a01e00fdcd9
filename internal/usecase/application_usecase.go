package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"
)

type applicationUsecase struct {
	tx                domain.Transactor
	applicationRepo   domain.ApplicationRepository
	jobRepo           domain.JobRepository
	audit             *audit.Logger
	strictTransitions bool
	now               func() time.Time
}

// NewApplicationUsecase creates a new application usecase. With strictTransitions the
// status may only follow the forward pipeline; otherwise any listed status is accepted.
func NewApplicationUsecase(
	tx domain.Transactor,
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	auditLogger *audit.Logger,
	strictTransitions bool,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		tx:                tx,
		applicationRepo:   appRepo,
		jobRepo:           jobRepo,
		audit:             auditLogger,
		strictTransitions: strictTransitions,
		now:               time.Now,
	}
}

// ApplyToJob creates a PENDING application for the caller on an open job
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, caller domain.Caller, jobID int64, coverLetter string) (*domain.Application, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	var app *domain.Application
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Validate job exists and is open
		job, err := uc.jobRepo.GetByID(ctx, jobID)
		if err != nil {
			return toAppError(err, "Job not found")
		}
		if !job.AcceptsApplications(uc.now()) {
			return apperror.BadRequest("This job is no longer accepting applications")
		}

		// 2. Check for duplicate application
		exists, err := uc.applicationRepo.CheckExists(ctx, jobID, caller.UserID)
		if err != nil {
			return apperror.Internal(err)
		}
		if exists {
			return apperror.Conflict("You have already applied to this job")
		}

		// 3. Create application; the unique constraint settles concurrent duplicates
		created := &domain.Application{
			JobID:             jobID,
			ApplicantID:       caller.UserID,
			CoverLetter:       coverLetter,
			Status:            domain.ApplicationStatusPending,
			JobTitle:          job.Title,
			CompanyName:       job.CompanyName,
			ApplicantUsername: caller.Username,
			JobOwnerID:        job.CompanyOwnerID,
		}
		if err := uc.applicationRepo.Create(ctx, created); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return apperror.Conflict("You have already applied to this job")
			}
			return toAppError(err, "Job not found")
		}
		app = created
		return nil
	})
	if err != nil {
		return nil, toAppError(err, "Job not found")
	}
	return app, nil
}

// ListApplications returns applications on the caller's jobs for employers, otherwise the caller's own
func (uc *applicationUsecase) ListApplications(ctx context.Context, caller domain.Caller, filter domain.ApplicationFilter, page domain.Page) ([]domain.Application, int64, error) {
	if err := requireCaller(caller); err != nil {
		return nil, 0, err
	}
	if err := validateStatusFilter(filter); err != nil {
		return nil, 0, err
	}
	apps, total, err := uc.applicationRepo.List(ctx, recordScope(caller), filter, page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return apps, total, nil
}

func (uc *applicationUsecase) GetApplication(ctx context.Context, caller domain.Caller, id int64) (*domain.Application, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, "Application not found")
	}
	if !inRecordScope(caller, app.JobOwnerID, app.ApplicantID) {
		return nil, apperror.NotFound("Application not found")
	}
	return app, nil
}

// UpdateApplicationStatus lets the job's company creator move an application to another status
func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, caller domain.Caller, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	// 1. Validate status
	if !status.Valid() {
		return nil, invalidStatusError(status)
	}

	var app *domain.Application
	var previous domain.ApplicationStatus
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 2. Get application within the caller's visible set
		found, err := uc.GetApplication(ctx, caller, id)
		if err != nil {
			return err
		}

		// 3. Only the job owner may transition
		if found.JobOwnerID != caller.UserID {
			uc.audit.LogAccessDenied(ctx, caller.UserID, "application", id)
			return apperror.Forbidden("Only the job owner can update application status")
		}

		// 4. Transition graph
		if uc.strictTransitions && !found.Status.CanTransitionTo(status) {
			return apperror.Validation("Invalid status transition", apperror.FieldError{
				Field:   "status",
				Message: fmt.Sprintf("Cannot change status from %s to %s", found.Status, status),
			})
		}

		// 5. Update status (also updates updated_at in repository)
		updatedAt, err := uc.applicationRepo.UpdateStatus(ctx, id, status)
		if err != nil {
			return toAppError(err, "Application not found")
		}
		previous = found.Status
		found.Status = status
		found.UpdatedAt = updatedAt
		app = found
		return nil
	})
	if err != nil {
		return nil, toAppError(err, "Application not found")
	}

	uc.audit.Log(ctx, audit.Event{
		Event:        audit.EventStatusChanged,
		UserID:       caller.UserID,
		SubjectType:  "application",
		SubjectValue: fmt.Sprint(id),
		Details:      map[string]interface{}{"from": string(previous), "to": string(status)},
	})
	return app, nil
}

func validateStatusFilter(filter domain.ApplicationFilter) error {
	if filter.Status != nil && !filter.Status.Valid() {
		return invalidStatusError(*filter.Status)
	}
	return nil
}

func invalidStatusError(status domain.ApplicationStatus) error {
	return apperror.Validation("Invalid status", apperror.FieldError{
		Field:   "status",
		Message: fmt.Sprintf("%q is not a valid choice", status),
	})
}
