package postgres

import (
	"context"
	"fmt"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `
		INSERT INTO companies (name, description, website, location, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		c.Name, c.Description, c.Website, c.Location, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT id, name, description, website, location, created_by, created_at, updated_at
	          FROM companies WHERE id = $1`
	var c domain.Company
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *companyRepo) List(ctx context.Context, search string, page domain.Page) ([]domain.Company, int64, error) {
	where := "TRUE"
	args := []interface{}{}
	if search != "" {
		args = append(args, containsPattern(search))
		where = `(name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\' OR location ILIKE $1 ESCAPE '\')`
	}

	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM companies WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, website, location, created_by, created_at, updated_at
		FROM companies WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

func (r *companyRepo) Update(ctx context.Context, c *domain.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, website = $4, location = $5, updated_at = now()
		WHERE id = $1
		RETURNING created_by, created_at, updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		c.ID, c.Name, c.Description, c.Website, c.Location,
	).Scan(&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

func (r *companyRepo) Delete(ctx context.Context, id int64) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
