package postgres

import (
	"context"
	"errors"
	"fmt"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const matchColumns = `
	m.id, m.job_id, m.candidate_id, m.score, m.match_type, m.created_at, m.updated_at,
	j.title, u.username, c.created_by`

const matchFrom = `
	FROM matches m
	JOIN job_postings j ON j.id = m.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN users u ON u.id = m.candidate_id`

type matchRepo struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) domain.MatchRepository {
	return &matchRepo{db: db}
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID, &m.JobID, &m.CandidateID, &m.Score, &m.MatchType, &m.CreatedAt, &m.UpdatedAt,
		&m.JobTitle, &m.CandidateUsername, &m.JobOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert refreshes the score of an existing ALGORITHM row in place, keeping its id and created_at.
// A MANUAL row for the same pair is not overwritten.
func (r *matchRepo) Upsert(ctx context.Context, m *domain.Match) (bool, error) {
	query := `
		INSERT INTO matches (job_id, candidate_id, score, match_type)
		VALUES ($1, $2, $3, 'ALGORITHM')
		ON CONFLICT (job_id, candidate_id) DO UPDATE
			SET score = EXCLUDED.score, updated_at = now()
			WHERE matches.match_type = 'ALGORITHM'
		RETURNING id, match_type, created_at, updated_at`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query, m.JobID, m.CandidateID, m.Score).
		Scan(&m.ID, &m.MatchType, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapError(err)
	}
	return true, nil
}

func (r *matchRepo) RefreshScore(ctx context.Context, m *domain.Match) error {
	query := `
		UPDATE matches SET score = $3, updated_at = now()
		WHERE job_id = $1 AND candidate_id = $2 AND match_type = 'ALGORITHM'`
	_, err := database.Conn(ctx, r.db).Exec(ctx, query, m.JobID, m.CandidateID, m.Score)
	return mapError(err)
}

func (r *matchRepo) Create(ctx context.Context, m *domain.Match) error {
	query := `
		INSERT INTO matches (job_id, candidate_id, score, match_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, m.JobID, m.CandidateID, m.Score, m.MatchType).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return mapError(err)
}

func (r *matchRepo) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + matchFrom + ` WHERE m.id = $1`
	m, err := scanMatch(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (r *matchRepo) List(ctx context.Context, scope domain.RecordScope, page domain.Page) ([]domain.Match, int64, error) {
	where := "m.candidate_id = $1"
	arg := scope.CandidateID
	if scope.ForEmployer() {
		where = "c.created_by = $1"
		arg = scope.EmployerID
	}

	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*)"+matchFrom+" WHERE "+where, arg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := `SELECT ` + matchColumns + matchFrom + ` WHERE ` + where + `
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := conn.Query(ctx, query, arg, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	matches := make([]domain.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, 0, err
		}
		matches = append(matches, *m)
	}
	return matches, total, rows.Err()
}

func (r *matchRepo) Delete(ctx context.Context, id int64) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
