package postgres

import (
	"testing"

	"matchmakr-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildApplicationFilter(t *testing.T) {
	t.Run("Should scope employers by company ownership", func(t *testing.T) {
		status := domain.ApplicationStatusReviewed
		where, args := buildApplicationFilter(domain.RecordScope{EmployerID: 3}, domain.ApplicationFilter{Status: &status})
		assert.Equal(t, "c.created_by = $1 AND a.status = $2", where)
		assert.Equal(t, []interface{}{int64(3), "REVIEWED"}, args)
	})

	t.Run("Should scope candidates to their own applications", func(t *testing.T) {
		jobID := int64(9)
		where, args := buildApplicationFilter(domain.RecordScope{CandidateID: 5}, domain.ApplicationFilter{JobID: &jobID})
		assert.Equal(t, "a.applicant_id = $1 AND a.job_id = $2", where)
		assert.Equal(t, []interface{}{int64(5), int64(9)}, args)
	})
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgxNoRows()), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(uniqueViolation("applications_job_id_applicant_id_key")), domain.ErrConflict)
}
