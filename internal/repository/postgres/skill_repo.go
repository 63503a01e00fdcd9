package postgres

import (
	"context"
	"fmt"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	query := `INSERT INTO skills (name, description) VALUES ($1, $2) RETURNING id`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, skill.Name, skill.Description).Scan(&skill.ID)
	return mapError(err)
}

func (r *skillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var s domain.Skill
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT id, name, description FROM skills WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// List returns skills ordered by name, optionally matching search against name or description
func (r *skillRepo) List(ctx context.Context, search string, page domain.Page) ([]domain.Skill, int64, error) {
	where := "TRUE"
	args := []interface{}{}
	if search != "" {
		args = append(args, containsPattern(search))
		where = `(name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\')`
	}

	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM skills WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, name, description FROM skills WHERE %s
		ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	skills := make([]domain.Skill, 0)
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, 0, err
		}
		skills = append(skills, s)
	}
	return skills, total, rows.Err()
}

func (r *skillRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	existing := make([]int64, 0, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT id FROM skills WHERE id = ANY($1) ORDER BY id`, pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing = append(existing, id)
	}
	return existing, rows.Err()
}

func (r *skillRepo) Update(ctx context.Context, skill *domain.Skill) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE skills SET name = $2, description = $3 WHERE id = $1`,
		skill.ID, skill.Name, skill.Description,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *skillRepo) Delete(ctx context.Context, id int64) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// skillsFor loads the skills attached to each owner id through a join table
func skillsFor(ctx context.Context, q database.Querier, table, ownerColumn string, ownerIDs []int64) (map[int64][]domain.Skill, error) {
	out := make(map[int64][]domain.Skill, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	query := fmt.Sprintf(`
		SELECT t.%[2]s, s.id, s.name, s.description
		FROM %[1]s t
		JOIN skills s ON s.id = t.skill_id
		WHERE t.%[2]s = ANY($1)
		ORDER BY s.name`, table, ownerColumn)

	rows, err := q.Query(ctx, query, pq.Array(ownerIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var owner int64
		var s domain.Skill
		if err := rows.Scan(&owner, &s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], s)
	}
	return out, rows.Err()
}

// replaceSkills rewrites an owner's rows in a skill join table
func replaceSkills(ctx context.Context, q database.Querier, table, ownerColumn string, ownerID int64, skillIDs []int64) error {
	if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, ownerColumn), ownerID); err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, skill_id)
		SELECT $1, UNNEST($2::BIGINT[])
		ON CONFLICT DO NOTHING`, table, ownerColumn)
	_, err := q.Exec(ctx, query, ownerID, pq.Array(skillIDs))
	return mapError(err)
}
