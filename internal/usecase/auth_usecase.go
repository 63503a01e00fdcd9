package usecase

import (
	"context"
	"errors"
	"strings"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid username or password"

type authUsecase struct {
	tx          domain.Transactor
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	tokens      domain.TokenIssuer
	audit       *audit.Logger
}

func NewAuthUsecase(
	tx domain.Transactor,
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	tokens domain.TokenIssuer,
	auditLogger *audit.Logger,
) domain.AuthUsecase {
	return &authUsecase{
		tx:          tx,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		audit:       auditLogger,
	}
}

// Register creates the account and its profile atomically and returns an access token
func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	// 1. Normalize input
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || in.Password == "" {
		return nil, apperror.BadRequest("Username and password are required")
	}
	if in.RoleType == "" {
		in.RoleType = domain.RoleCandidate
		if in.IsEmployer {
			in.RoleType = domain.RoleEmployer
		}
	}
	if !in.RoleType.Valid() {
		return nil, apperror.Validation("Invalid input",
			apperror.FieldError{Field: "role_type", Message: "Must be one of: CANDIDATE, EMPLOYER, ADMIN"})
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
	}
	profile := &domain.UserProfile{
		IsEmployer:        in.IsEmployer || in.RoleType == domain.RoleEmployer,
		RoleType:          in.RoleType,
		Bio:               in.Bio,
		Age:               in.Age,
		Location:          in.Location,
		CurrentTitle:      in.CurrentTitle,
		YearsOfExperience: in.YearsOfExperience,
		ImageURL:          in.ImageURL,
		LinkedInURL:       in.LinkedInURL,
		GithubURL:         in.GithubURL,
		PortfolioURL:      in.PortfolioURL,
	}

	// 3. Persist account + profile in one transaction
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return apperror.Conflict("A user with that username already exists")
			}
			return err
		}
		profile.UserID = user.ID
		return u.profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, toAppError(err, "User not found")
	}
	fillProfileIdentity(profile, user)

	// 4. Issue token
	token, exp, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Log(ctx, audit.Event{Event: audit.EventAccountRegistered, UserID: user.ID})

	return &domain.AuthResult{Token: token, ExpiresAt: exp, User: user, Profile: profile}, nil
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	user, err := u.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.audit.LogLoginFailed(ctx, username, "unknown_user")
			return nil, apperror.Unauthorized(invalidCredentials)
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		u.audit.LogLoginFailed(ctx, username, "invalid_password")
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	profile, err := u.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	token, exp, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Log(ctx, audit.Event{Event: audit.EventLoginSuccess, UserID: user.ID})

	return &domain.AuthResult{Token: token, ExpiresAt: exp, User: user, Profile: profile}, nil
}

// ResolveCaller loads the identity behind a verified token
func (u *authUsecase) ResolveCaller(ctx context.Context, userID int64) (domain.Caller, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Caller{}, apperror.Unauthorized("User not found")
		}
		return domain.Caller{}, apperror.Internal(err)
	}

	caller := domain.Caller{UserID: user.ID, Username: user.Username, IsStaff: user.IsStaff}

	profile, err := u.profileRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		caller.IsEmployer = profile.Employer()
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Caller{}, apperror.Internal(err)
	}
	return caller, nil
}

func (u *authUsecase) Me(ctx context.Context, caller domain.Caller) (*domain.User, *domain.UserProfile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, nil, err
	}
	user, err := u.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, nil, toAppError(err, "User not found")
	}
	profile, err := u.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, apperror.Internal(err)
	}
	return user, profile, nil
}

func fillProfileIdentity(p *domain.UserProfile, user *domain.User) {
	p.Username = user.Username
	p.Email = user.Email
	p.FirstName = user.FirstName
	p.LastName = user.LastName
	if p.Skills == nil {
		p.Skills = []domain.Skill{}
	}
	if p.PreviousTitles == nil {
		p.PreviousTitles = []domain.PreviousTitle{}
	}
}
