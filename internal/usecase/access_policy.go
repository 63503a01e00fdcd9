package usecase

import (
	"errors"
	"net/http"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
)

// Visibility rules shared by the usecases. Records outside a caller's visible set are
// reported as not found; visible records the caller may not change are forbidden.

func requireCaller(caller domain.Caller) error {
	if !caller.Authenticated() {
		return apperror.Unauthorized("Authentication credentials were not provided")
	}
	return nil
}

// recordScope narrows applications and matches: employers see records on jobs of the
// companies they created, everyone else sees the records they are the subject of.
func recordScope(caller domain.Caller) domain.RecordScope {
	if caller.IsEmployer {
		return domain.RecordScope{EmployerID: caller.UserID}
	}
	return domain.RecordScope{CandidateID: caller.UserID}
}

// inRecordScope reports whether a record on a job owned by jobOwnerID with subject
// subjectID is visible to the caller under recordScope.
func inRecordScope(caller domain.Caller, jobOwnerID, subjectID int64) bool {
	scope := recordScope(caller)
	if scope.ForEmployer() {
		return jobOwnerID == scope.EmployerID
	}
	return subjectID == scope.CandidateID
}

func profileScope(caller domain.Caller) domain.ProfileScope {
	if caller.IsStaff {
		return domain.ProfileScope{All: true}
	}
	return domain.ProfileScope{UserID: caller.UserID}
}

func canViewProfile(caller domain.Caller, p *domain.UserProfile) bool {
	return caller.IsStaff || p.UserID == caller.UserID
}

// toAppError maps repository sentinels onto HTTP-facing errors
func toAppError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrConflict):
		return apperror.New(http.StatusConflict, "Resource already exists", err)
	default:
		return apperror.Internal(err)
	}
}
