package domain

import (
	"context"
	"time"
)

// User is an identity account. PasswordHash never leaves the storage and auth layers.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsStaff      bool      `json:"is_staff"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterInput carries a signup request: account credentials plus optional profile data
type RegisterInput struct {
	Username          string
	Email             string
	Password          string
	FirstName         string
	LastName          string
	IsEmployer        bool
	RoleType          RoleType
	Bio               string
	Age               *int
	Location          string
	CurrentTitle      string
	YearsOfExperience int
	ImageURL          string
	LinkedInURL       string
	GithubURL         string
	PortfolioURL      string
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *User        `json:"user"`
	Profile   *UserProfile `json:"profile"`
}

// TokenIssuer signs access tokens for an account
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	ResolveCaller(ctx context.Context, userID int64) (Caller, error)
	Me(ctx context.Context, caller Caller) (*User, *UserProfile, error)
}
