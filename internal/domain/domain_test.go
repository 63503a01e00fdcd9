package domain_test

import (
	"testing"
	"time"

	"matchmakr-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusTransitions(t *testing.T) {
	t.Run("Should allow one step forward", func(t *testing.T) {
		assert.True(t, domain.ApplicationStatusPending.CanTransitionTo(domain.ApplicationStatusReviewed))
		assert.True(t, domain.ApplicationStatusOffered.CanTransitionTo(domain.ApplicationStatusAccepted))
	})

	t.Run("Should reject skipping steps", func(t *testing.T) {
		assert.False(t, domain.ApplicationStatusPending.CanTransitionTo(domain.ApplicationStatusAccepted))
		assert.False(t, domain.ApplicationStatusReviewed.CanTransitionTo(domain.ApplicationStatusPending))
	})

	t.Run("Should allow rejection and withdrawal from non-terminal states", func(t *testing.T) {
		assert.True(t, domain.ApplicationStatusShortlisted.CanTransitionTo(domain.ApplicationStatusRejected))
		assert.True(t, domain.ApplicationStatusPending.CanTransitionTo(domain.ApplicationStatusWithdrawn))
	})

	t.Run("Should not leave terminal states", func(t *testing.T) {
		for _, s := range []domain.ApplicationStatus{
			domain.ApplicationStatusAccepted,
			domain.ApplicationStatusRejected,
			domain.ApplicationStatusWithdrawn,
		} {
			assert.True(t, s.Terminal())
			for _, next := range domain.ApplicationStatuses {
				assert.False(t, s.CanTransitionTo(next), "%s -> %s", s, next)
			}
		}
	})

	t.Run("Should reject unknown values", func(t *testing.T) {
		assert.False(t, domain.ApplicationStatus("HIRED").Valid())
		assert.False(t, domain.ApplicationStatusPending.CanTransitionTo("HIRED"))
	})
}

func TestNewPage(t *testing.T) {
	p := domain.NewPage(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, domain.DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = domain.NewPage(3, 500)
	assert.Equal(t, domain.MaxPageSize, p.Limit())
	assert.Equal(t, 200, p.Offset())
}

func TestJobPosting(t *testing.T) {
	lo, hi := 5000.0, 3000.0
	job := domain.JobPosting{SalaryMin: &lo, SalaryMax: &hi}
	assert.False(t, job.SalaryRangeValid())

	job.SalaryMax = nil
	assert.True(t, job.SalaryRangeValid())

	now := time.Now()
	job.IsActive = true
	job.ApplicationDeadline = now.Add(time.Hour)
	assert.True(t, job.AcceptsApplications(now))

	job.ApplicationDeadline = now.Add(-time.Hour)
	assert.False(t, job.AcceptsApplications(now))

	job.ApplicationDeadline = now.Add(time.Hour)
	job.IsActive = false
	assert.False(t, job.AcceptsApplications(now))
}

func TestProfileEmployer(t *testing.T) {
	assert.True(t, (&domain.UserProfile{IsEmployer: true}).Employer())
	assert.True(t, (&domain.UserProfile{RoleType: domain.RoleEmployer}).Employer())
	assert.False(t, (&domain.UserProfile{RoleType: domain.RoleCandidate}).Employer())
}
