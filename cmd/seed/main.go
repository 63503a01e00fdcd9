// Command seed loads the skill catalogue and, optionally, a staff account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"matchmakr-backend/config"
	"matchmakr-backend/internal/domain"
	"matchmakr-backend/internal/repository/postgres"
	"matchmakr-backend/pkg/database"
	"matchmakr-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

var catalogue = []domain.Skill{
	{Name: "Go", Description: "Go programming language"},
	{Name: "Python", Description: "Python programming language"},
	{Name: "JavaScript", Description: "JavaScript programming language"},
	{Name: "TypeScript", Description: "Typed superset of JavaScript"},
	{Name: "Java", Description: "Java programming language"},
	{Name: "React", Description: "UI library for the web"},
	{Name: "React Native", Description: "Cross-platform mobile apps with React"},
	{Name: "Django", Description: "Python web framework"},
	{Name: "PostgreSQL", Description: "Relational database"},
	{Name: "Redis", Description: "In-memory data store"},
	{Name: "Docker", Description: "Container tooling"},
	{Name: "Kubernetes", Description: "Container orchestration"},
	{Name: "AWS", Description: "Amazon Web Services"},
	{Name: "SQL", Description: "Structured Query Language"},
	{Name: "Git", Description: "Version control"},
	{Name: "Machine Learning", Description: "Statistical learning and modelling"},
	{Name: "Project Management", Description: "Planning and delivery"},
	{Name: "UI/UX Design", Description: "Interface and experience design"},
}

func main() {
	staffUser := flag.String("staff-username", os.Getenv("SEED_STAFF_USERNAME"), "create a staff account with this username")
	staffPass := flag.String("staff-password", os.Getenv("SEED_STAFF_PASSWORD"), "password for the staff account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()
	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	added, err := seedSkills(ctx, postgres.NewSkillRepository(pool))
	if err != nil {
		log.Fatalf("Failed to seed skills: %v", err)
	}
	logger.Log.Info("Skill catalogue loaded", "added", added, "total", len(catalogue))

	if *staffUser == "" {
		return
	}
	if *staffPass == "" {
		log.Fatal("staff password is required when a staff username is given")
	}
	err = database.NewTransactor(pool).WithinTransaction(ctx, func(ctx context.Context) error {
		return seedStaff(ctx, postgres.NewUserRepository(pool), postgres.NewProfileRepository(pool), *staffUser, *staffPass)
	})
	if err != nil {
		log.Fatalf("Failed to create staff account: %v", err)
	}
	logger.Log.Info("Staff account ready", "username", *staffUser)
}

// seedSkills inserts catalogue entries that do not exist yet
func seedSkills(ctx context.Context, repo domain.SkillRepository) (int, error) {
	added := 0
	for _, s := range catalogue {
		skill := s
		err := repo.Create(ctx, &skill)
		switch {
		case err == nil:
			added++
		case errors.Is(err, domain.ErrConflict):
		default:
			return added, fmt.Errorf("skill %q: %w", s.Name, err)
		}
	}
	return added, nil
}

func seedStaff(ctx context.Context, users domain.UserRepository, profiles domain.ProfileRepository, username, password string) error {
	if _, err := users.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &domain.User{Username: username, PasswordHash: string(hash), IsStaff: true}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	return profiles.Create(ctx, &domain.UserProfile{UserID: user.ID, RoleType: domain.RoleAdmin})
}
