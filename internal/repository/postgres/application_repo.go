package postgres

import (
	"context"
	"fmt"
	"time"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `
	a.id, a.job_id, a.applicant_id, a.cover_letter, a.status, a.created_at, a.updated_at,
	j.title, c.name, u.username, u.email, c.created_by`

const applicationFrom = `
	FROM applications a
	JOIN job_postings j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN users u ON u.id = a.applicant_id`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.CoverLetter, &app.Status, &app.CreatedAt, &app.UpdatedAt,
		&app.JobTitle, &app.CompanyName, &app.ApplicantUsername, &app.ApplicantEmail, &app.JobOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// buildApplicationFilter scopes to the employer's jobs or the candidate's own applications
func buildApplicationFilter(scope domain.RecordScope, filter domain.ApplicationFilter) (string, []interface{}) {
	var where string
	args := []interface{}{}
	if scope.ForEmployer() {
		where = "c.created_by = $1"
		args = append(args, scope.EmployerID)
	} else {
		where = "a.applicant_id = $1"
		args = append(args, scope.CandidateID)
	}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		where += fmt.Sprintf(" AND a.job_id = $%d", len(args))
	}
	return where, args
}

// Create inserts a new application. The (job_id, applicant_id) unique constraint maps to ErrConflict.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	query := `
		INSERT INTO applications (job_id, applicant_id, cover_letter, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		app.JobID, app.ApplicantID, app.CoverLetter, app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	return mapError(err)
}

// GetByID retrieves an application with joined job, company and applicant data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + applicationFrom + ` WHERE a.id = $1`
	app, err := scanApplication(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return app, nil
}

func (r *applicationRepo) List(ctx context.Context, scope domain.RecordScope, filter domain.ApplicationFilter, page domain.Page) ([]domain.Application, int64, error) {
	where, args := buildApplicationFilter(scope, filter)
	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*)"+applicationFrom+" WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $%d OFFSET $%d`, applicationColumns, applicationFrom, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	apps, err := r.query(ctx, conn, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// ListAll returns every application in scope, unpaginated
func (r *applicationRepo) ListAll(ctx context.Context, scope domain.RecordScope, filter domain.ApplicationFilter) ([]domain.Application, error) {
	where, args := buildApplicationFilter(scope, filter)
	query := `SELECT ` + applicationColumns + applicationFrom + ` WHERE ` + where +
		` ORDER BY a.created_at DESC, a.id DESC`
	return r.query(ctx, database.Conn(ctx, r.db), query, args...)
}

func (r *applicationRepo) query(ctx context.Context, conn database.Querier, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// CheckExists checks if the applicant already applied to the job
func (r *applicationRepo) CheckExists(ctx context.Context, jobID, applicantID int64) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (time.Time, error) {
	var updatedAt time.Time
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		id, status,
	).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, mapError(err)
	}
	return updatedAt, nil
}
