package postgres

import (
	"context"
	"fmt"
	"strings"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `
	j.id, j.company_id, j.title, j.description, j.requirements, j.location,
	j.salary_min, j.salary_max, j.employment_type, j.experience_level,
	j.is_remote, j.is_active, j.application_deadline, j.created_by,
	j.created_at, j.updated_at, c.name, c.created_by`

const jobFrom = `FROM job_postings j JOIN companies c ON c.id = j.company_id`

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.JobPosting, error) {
	var j domain.JobPosting
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, &j.Location,
		&j.SalaryMin, &j.SalaryMax, &j.EmploymentType, &j.ExperienceLevel,
		&j.IsRemote, &j.IsActive, &j.ApplicationDeadline, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt, &j.CompanyName, &j.CompanyOwnerID,
	)
	if err != nil {
		return nil, err
	}
	j.RequiredSkills = []domain.Skill{}
	j.PreferredSkills = []domain.Skill{}
	return &j, nil
}

// buildJobFilter turns the set filter fields into an AND-composed WHERE clause
func buildJobFilter(filter domain.JobFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("j.is_active = $%d", argIndex))
		args = append(args, *filter.IsActive)
		argIndex++
	}
	if filter.EmploymentType != nil {
		conditions = append(conditions, fmt.Sprintf("j.employment_type = $%d", argIndex))
		args = append(args, string(*filter.EmploymentType))
		argIndex++
	}
	if filter.ExperienceLevel != nil {
		conditions = append(conditions, fmt.Sprintf("j.experience_level = $%d", argIndex))
		args = append(args, string(*filter.ExperienceLevel))
		argIndex++
	}
	if filter.IsRemote != nil {
		conditions = append(conditions, fmt.Sprintf("j.is_remote = $%d", argIndex))
		args = append(args, *filter.IsRemote)
		argIndex++
	}
	if filter.CompanyID != nil {
		conditions = append(conditions, fmt.Sprintf("j.company_id = $%d", argIndex))
		args = append(args, *filter.CompanyID)
		argIndex++
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(j.title ILIKE $%[1]d ESCAPE '\' OR j.description ILIKE $%[1]d ESCAPE '\' OR `+
				`j.requirements ILIKE $%[1]d ESCAPE '\' OR j.location ILIKE $%[1]d ESCAPE '\')`,
			argIndex,
		))
		args = append(args, containsPattern(search))
	}

	if len(conditions) == 0 {
		return "TRUE", args
	}
	return strings.Join(conditions, " AND "), args
}

func (r *jobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	query := `
		INSERT INTO job_postings (
			company_id, title, description, requirements, location, salary_min, salary_max,
			employment_type, experience_level, is_remote, is_active, application_deadline, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	conn := database.Conn(ctx, r.db)
	err := conn.QueryRow(ctx, query,
		job.CompanyID, job.Title, job.Description, job.Requirements, job.Location,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, job.ExperienceLevel,
		job.IsRemote, job.IsActive, job.ApplicationDeadline, job.CreatedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return r.replaceSkills(ctx, conn, job)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	conn := database.Conn(ctx, r.db)
	job, err := scanJob(conn.QueryRow(ctx, `SELECT `+jobColumns+` `+jobFrom+` WHERE j.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	jobs := []domain.JobPosting{*job}
	if err := r.attachSkills(ctx, conn, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter, page domain.Page) ([]domain.JobPosting, int64, error) {
	where, args := buildJobFilter(filter)
	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) "+jobFrom+" WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s
		ORDER BY j.created_at DESC, j.id DESC
		LIMIT $%d OFFSET $%d`, jobColumns, jobFrom, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	jobs, err := r.query(ctx, conn, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) ListActive(ctx context.Context) ([]domain.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` ` + jobFrom + ` WHERE j.is_active = TRUE ORDER BY j.id`
	return r.query(ctx, database.Conn(ctx, r.db), query)
}

func (r *jobRepo) ListByCompanyOwner(ctx context.Context, userID int64) ([]domain.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` ` + jobFrom + ` WHERE c.created_by = $1 ORDER BY j.id`
	return r.query(ctx, database.Conn(ctx, r.db), query, userID)
}

func (r *jobRepo) query(ctx context.Context, conn database.Querier, query string, args ...interface{}) ([]domain.JobPosting, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.JobPosting, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachSkills(ctx, conn, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) attachSkills(ctx context.Context, conn database.Querier, jobs []domain.JobPosting) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]int64, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
	}

	required, err := skillsFor(ctx, conn, "job_required_skills", "job_posting_id", ids)
	if err != nil {
		return err
	}
	preferred, err := skillsFor(ctx, conn, "job_preferred_skills", "job_posting_id", ids)
	if err != nil {
		return err
	}

	for i := range jobs {
		if s, ok := required[jobs[i].ID]; ok {
			jobs[i].RequiredSkills = s
		}
		if s, ok := preferred[jobs[i].ID]; ok {
			jobs[i].PreferredSkills = s
		}
	}
	return nil
}

func (r *jobRepo) replaceSkills(ctx context.Context, conn database.Querier, job *domain.JobPosting) error {
	if err := replaceSkills(ctx, conn, "job_required_skills", "job_posting_id", job.ID, job.RequiredSkillIDs()); err != nil {
		return err
	}
	return replaceSkills(ctx, conn, "job_preferred_skills", "job_posting_id", job.ID, job.PreferredSkillIDs())
}

// Update rewrites every mutable column and both skill sets. created_by is never changed.
func (r *jobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	query := `
		UPDATE job_postings SET
			company_id = $2, title = $3, description = $4, requirements = $5, location = $6,
			salary_min = $7, salary_max = $8, employment_type = $9, experience_level = $10,
			is_remote = $11, is_active = $12, application_deadline = $13, updated_at = now()
		WHERE id = $1
		RETURNING created_by, created_at, updated_at`

	conn := database.Conn(ctx, r.db)
	err := conn.QueryRow(ctx, query,
		job.ID, job.CompanyID, job.Title, job.Description, job.Requirements, job.Location,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, job.ExperienceLevel,
		job.IsRemote, job.IsActive, job.ApplicationDeadline,
	).Scan(&job.CreatedBy, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return r.replaceSkills(ctx, conn, job)
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
