package postgres

import (
	"context"
	"fmt"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const profileColumns = `
	p.id, p.user_id, u.username, u.email, u.first_name, u.last_name,
	p.is_employer, p.bio, p.image_url, p.age, p.location, p.role_type,
	p.current_title, p.years_of_experience, p.resume_url, p.linkedin_url,
	p.github_url, p.portfolio_url, p.twitter_url, p.personal_website,
	p.created_at, p.updated_at`

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Username, &p.Email, &p.FirstName, &p.LastName,
		&p.IsEmployer, &p.Bio, &p.ImageURL, &p.Age, &p.Location, &p.RoleType,
		&p.CurrentTitle, &p.YearsOfExperience, &p.ResumeURL, &p.LinkedInURL,
		&p.GithubURL, &p.PortfolioURL, &p.TwitterURL, &p.PersonalWebsite,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Skills = []domain.Skill{}
	p.PreviousTitles = []domain.PreviousTitle{}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, p *domain.UserProfile) error {
	if p.RoleType == "" {
		p.RoleType = domain.RoleCandidate
	}
	query := `
		INSERT INTO user_profiles (
			user_id, is_employer, bio, image_url, age, location, role_type, current_title,
			years_of_experience, resume_url, linkedin_url, github_url, portfolio_url,
			twitter_url, personal_website
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`

	conn := database.Conn(ctx, r.db)
	err := conn.QueryRow(ctx, query,
		p.UserID, p.IsEmployer, p.Bio, p.ImageURL, p.Age, p.Location, p.RoleType, p.CurrentTitle,
		p.YearsOfExperience, p.ResumeURL, p.LinkedInURL, p.GithubURL, p.PortfolioURL,
		p.TwitterURL, p.PersonalWebsite,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	if err := replaceSkills(ctx, conn, "profile_skills", "user_profile_id", p.ID, p.SkillIDs()); err != nil {
		return err
	}
	return r.replacePreviousTitles(ctx, conn, p)
}

func (r *profileRepo) GetByID(ctx context.Context, id int64) (*domain.UserProfile, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	return r.getOne(ctx, "p.user_id = $1", userID)
}

func (r *profileRepo) getOne(ctx context.Context, where string, arg int64) (*domain.UserProfile, error) {
	conn := database.Conn(ctx, r.db)
	query := `SELECT ` + profileColumns + `
		FROM user_profiles p JOIN users u ON u.id = p.user_id
		WHERE ` + where

	p, err := scanProfile(conn.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err)
	}

	profiles := []domain.UserProfile{*p}
	if err := r.attachRelations(ctx, conn, profiles); err != nil {
		return nil, err
	}
	return &profiles[0], nil
}

// List returns all profiles for scope.All, otherwise only the profile owned by scope.UserID
func (r *profileRepo) List(ctx context.Context, scope domain.ProfileScope, page domain.Page) ([]domain.UserProfile, int64, error) {
	where := "TRUE"
	args := []interface{}{}
	if !scope.All {
		where = "p.user_id = $1"
		args = append(args, scope.UserID)
	}

	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM user_profiles p WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM user_profiles p JOIN users u ON u.id = p.user_id
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d OFFSET $%d`, profileColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	profiles, err := r.query(ctx, conn, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *profileRepo) ListCandidates(ctx context.Context) ([]domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + `
		FROM user_profiles p JOIN users u ON u.id = p.user_id
		WHERE p.is_employer = FALSE AND p.role_type <> 'EMPLOYER'
		ORDER BY p.id`
	return r.query(ctx, database.Conn(ctx, r.db), query)
}

func (r *profileRepo) query(ctx context.Context, conn database.Querier, query string, args ...interface{}) ([]domain.UserProfile, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.UserProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachRelations(ctx, conn, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) attachRelations(ctx context.Context, conn database.Querier, profiles []domain.UserProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := make([]int64, len(profiles))
	for i := range profiles {
		ids[i] = profiles[i].ID
	}

	skills, err := skillsFor(ctx, conn, "profile_skills", "user_profile_id", ids)
	if err != nil {
		return err
	}

	rows, err := conn.Query(ctx, `
		SELECT id, user_profile_id, title, company, duration
		FROM previous_titles WHERE user_profile_id = ANY($1)
		ORDER BY id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	titles := make(map[int64][]domain.PreviousTitle)
	for rows.Next() {
		var t domain.PreviousTitle
		if err := rows.Scan(&t.ID, &t.UserProfileID, &t.Title, &t.Company, &t.Duration); err != nil {
			return err
		}
		titles[t.UserProfileID] = append(titles[t.UserProfileID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range profiles {
		if s, ok := skills[profiles[i].ID]; ok {
			profiles[i].Skills = s
		}
		if t, ok := titles[profiles[i].ID]; ok {
			profiles[i].PreviousTitles = t
		}
	}
	return nil
}

func (r *profileRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	query := `
		UPDATE user_profiles SET
			is_employer = $2, bio = $3, image_url = $4, age = $5, location = $6, role_type = $7,
			current_title = $8, years_of_experience = $9, resume_url = $10, linkedin_url = $11,
			github_url = $12, portfolio_url = $13, twitter_url = $14, personal_website = $15,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	conn := database.Conn(ctx, r.db)
	err := conn.QueryRow(ctx, query,
		p.ID, p.IsEmployer, p.Bio, p.ImageURL, p.Age, p.Location, p.RoleType,
		p.CurrentTitle, p.YearsOfExperience, p.ResumeURL, p.LinkedInURL,
		p.GithubURL, p.PortfolioURL, p.TwitterURL, p.PersonalWebsite,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	if err := replaceSkills(ctx, conn, "profile_skills", "user_profile_id", p.ID, p.SkillIDs()); err != nil {
		return err
	}
	return r.replacePreviousTitles(ctx, conn, p)
}

func (r *profileRepo) replacePreviousTitles(ctx context.Context, conn database.Querier, p *domain.UserProfile) error {
	if _, err := conn.Exec(ctx, `DELETE FROM previous_titles WHERE user_profile_id = $1`, p.ID); err != nil {
		return err
	}
	for i := range p.PreviousTitles {
		t := &p.PreviousTitles[i]
		t.UserProfileID = p.ID
		err := conn.QueryRow(ctx, `
			INSERT INTO previous_titles (user_profile_id, title, company, duration)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			p.ID, t.Title, t.Company, t.Duration,
		).Scan(&t.ID)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}
