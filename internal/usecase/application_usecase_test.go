package usecase_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/internal/usecase"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openJob() *domain.JobPosting {
	return &domain.JobPosting{
		ID:                  10,
		Title:               "Go Engineer",
		CompanyName:         "Acme",
		CompanyOwnerID:      employer.UserID,
		IsActive:            true,
		ApplicationDeadline: time.Now().Add(24 * time.Hour),
	}
}

func pendingApplication() *domain.Application {
	return &domain.Application{
		ID:          5,
		JobID:       10,
		ApplicantID: candidate.UserID,
		Status:      domain.ApplicationStatusPending,
		JobOwnerID:  employer.UserID,
	}
}

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create a pending application", func(t *testing.T) {
		appRepo, jobRepo := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, jobRepo, audit.NewNop(), false)

		jobRepo.On("GetByID", ctx, int64(10)).Return(openJob(), nil)
		appRepo.On("CheckExists", ctx, int64(10), candidate.UserID).Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := uc.ApplyToJob(ctx, candidate, 10, "hello")
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, candidate.UserID, app.ApplicantID)
		assert.Equal(t, "Go Engineer", app.JobTitle)
	})

	t.Run("Should reject a duplicate application with 409", func(t *testing.T) {
		appRepo, jobRepo := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, jobRepo, audit.NewNop(), false)

		jobRepo.On("GetByID", ctx, int64(10)).Return(openJob(), nil)
		appRepo.On("CheckExists", ctx, int64(10), candidate.UserID).Return(true, nil)

		_, err := uc.ApplyToJob(ctx, candidate, 10, "")
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map a racing unique violation to 409", func(t *testing.T) {
		appRepo, jobRepo := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, jobRepo, audit.NewNop(), false)

		jobRepo.On("GetByID", ctx, int64(10)).Return(openJob(), nil)
		appRepo.On("CheckExists", ctx, int64(10), candidate.UserID).Return(false, nil)
		appRepo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)

		_, err := uc.ApplyToJob(ctx, candidate, 10, "")
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	})

	t.Run("Should refuse closed jobs", func(t *testing.T) {
		appRepo, jobRepo := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, jobRepo, audit.NewNop(), false)

		expired := openJob()
		expired.ApplicationDeadline = time.Now().Add(-time.Hour)
		jobRepo.On("GetByID", ctx, int64(10)).Return(expired, nil)

		_, err := uc.ApplyToJob(ctx, candidate, 10, "")
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should return 404 for a missing job", func(t *testing.T) {
		appRepo, jobRepo := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, jobRepo, audit.NewNop(), false)

		jobRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.ApplyToJob(ctx, candidate, 99, "")
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})

	t.Run("Should require authentication", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(MockTransactor{}, new(MockApplicationRepo), new(MockJobRepo), audit.NewNop(), false)
		_, err := uc.ApplyToJob(ctx, domain.Caller{}, 10, "")
		assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
	})
}

func TestApplicationLifecycleRunsInTransaction(t *testing.T) {
	ctx := context.Background()
	tx := &CountingTransactor{}
	appRepo, jobRepo := new(MockApplicationRepo), new(MockJobRepo)
	uc := usecase.NewApplicationUsecase(tx, appRepo, jobRepo, audit.NewNop(), false)

	jobRepo.On("GetByID", ctx, int64(10)).Return(openJob(), nil)
	appRepo.On("CheckExists", ctx, int64(10), candidate.UserID).Return(false, nil)
	appRepo.On("Create", ctx, mock.Anything).Return(nil)
	appRepo.On("GetByID", ctx, int64(5)).Return(pendingApplication(), nil)
	appRepo.On("UpdateStatus", ctx, int64(5), domain.ApplicationStatusReviewed).Return(time.Now(), nil)

	_, err := uc.ApplyToJob(ctx, candidate, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 1, tx.Calls)

	_, err = uc.UpdateApplicationStatus(ctx, employer, 5, domain.ApplicationStatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, 2, tx.Calls)
}

func TestListApplicationsScope(t *testing.T) {
	ctx := context.Background()
	page := domain.NewPage(1, 20)

	t.Run("Employers see applications on their jobs", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)

		appRepo.On("List", ctx, domain.RecordScope{EmployerID: employer.UserID}, domain.ApplicationFilter{}, page).
			Return([]domain.Application{*pendingApplication()}, int64(1), nil)

		apps, total, err := uc.ListApplications(ctx, employer, domain.ApplicationFilter{}, page)
		require.NoError(t, err)
		assert.Len(t, apps, 1)
		assert.Equal(t, int64(1), total)
	})

	t.Run("Candidates see their own applications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)

		appRepo.On("List", ctx, domain.RecordScope{CandidateID: candidate.UserID}, domain.ApplicationFilter{}, page).
			Return([]domain.Application{}, int64(0), nil)

		_, _, err := uc.ListApplications(ctx, candidate, domain.ApplicationFilter{}, page)
		require.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("Rejects an unknown status filter", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(MockTransactor{}, new(MockApplicationRepo), new(MockJobRepo), audit.NewNop(), false)
		bogus := domain.ApplicationStatus("HIRED")

		_, _, err := uc.ListApplications(ctx, candidate, domain.ApplicationFilter{Status: &bogus}, page)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})
}

func TestGetApplicationVisibility(t *testing.T) {
	ctx := context.Background()
	appRepo := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)
	appRepo.On("GetByID", ctx, int64(5)).Return(pendingApplication(), nil)

	_, err := uc.GetApplication(ctx, candidate, 5)
	assert.NoError(t, err)
	_, err = uc.GetApplication(ctx, employer, 5)
	assert.NoError(t, err)

	_, err = uc.GetApplication(ctx, stranger, 5)
	assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	_, err = uc.GetApplication(ctx, domain.Caller{UserID: 42}, 5)
	assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	updatedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Job owner moves the application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)

		appRepo.On("GetByID", ctx, int64(5)).Return(pendingApplication(), nil)
		appRepo.On("UpdateStatus", ctx, int64(5), domain.ApplicationStatusShortlisted).Return(updatedAt, nil)

		app, err := uc.UpdateApplicationStatus(ctx, employer, 5, domain.ApplicationStatusShortlisted)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, app.Status)
		assert.Equal(t, updatedAt, app.UpdatedAt)
	})

	t.Run("Invalid status leaves the application unchanged", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)

		_, err := uc.UpdateApplicationStatus(ctx, employer, 5, domain.ApplicationStatus("HIRED"))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "status", appErr.Fields[0].Field)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Applicant cannot change their own status", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)
		appRepo.On("GetByID", ctx, int64(5)).Return(pendingApplication(), nil)

		_, err := uc.UpdateApplicationStatus(ctx, candidate, 5, domain.ApplicationStatusAccepted)
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Other employers get 404", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)
		appRepo.On("GetByID", ctx, int64(5)).Return(pendingApplication(), nil)

		_, err := uc.UpdateApplicationStatus(ctx, stranger, 5, domain.ApplicationStatusReviewed)
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})

	t.Run("Any listed status is accepted by default", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)
		appRepo.On("GetByID", ctx, int64(5)).Return(pendingApplication(), nil)
		appRepo.On("UpdateStatus", ctx, int64(5), domain.ApplicationStatusAccepted).Return(updatedAt, nil)

		_, err := uc.UpdateApplicationStatus(ctx, employer, 5, domain.ApplicationStatusAccepted)
		assert.NoError(t, err)
	})

	t.Run("Strict mode refuses skipping stages", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), true)
		appRepo.On("GetByID", ctx, int64(5)).Return(pendingApplication(), nil)

		_, err := uc.UpdateApplicationStatus(ctx, employer, 5, domain.ApplicationStatusAccepted)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExportApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("Builds a workbook with one row per application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(MockTransactor{}, appRepo, new(MockJobRepo), audit.NewNop(), false)

		app := *pendingApplication()
		app.JobTitle = "Go Engineer"
		app.ApplicantUsername = "alice"
		appRepo.On("ListAll", ctx, domain.RecordScope{EmployerID: employer.UserID}, domain.ApplicationFilter{}).
			Return([]domain.Application{app}, nil)

		data, filename, err := uc.ExportApplications(ctx, employer, domain.ApplicationFilter{})
		require.NoError(t, err)
		assert.Contains(t, filename, ".xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Applications")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "APPLICATION ID", rows[0][0])
		assert.Equal(t, "Go Engineer", rows[1][2])
		assert.Equal(t, "alice", rows[1][4])
		assert.Equal(t, "PENDING", rows[1][6])
	})

	t.Run("Candidates cannot export", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(MockTransactor{}, new(MockApplicationRepo), new(MockJobRepo), audit.NewNop(), false)
		_, _, err := uc.ExportApplications(ctx, candidate, domain.ApplicationFilter{})
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})
}
