package usecase

import (
	"context"
	"fmt"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"
)

type profileUsecase struct {
	tx          domain.Transactor
	profileRepo domain.ProfileRepository
	skillRepo   domain.SkillRepository
	audit       *audit.Logger
}

func NewProfileUsecase(
	tx domain.Transactor,
	profileRepo domain.ProfileRepository,
	skillRepo domain.SkillRepository,
	auditLogger *audit.Logger,
) domain.ProfileUsecase {
	return &profileUsecase{tx: tx, profileRepo: profileRepo, skillRepo: skillRepo, audit: auditLogger}
}

// ListProfiles returns every profile to staff and only the caller's own profile otherwise
func (u *profileUsecase) ListProfiles(ctx context.Context, caller domain.Caller, page domain.Page) ([]domain.UserProfile, int64, error) {
	if err := requireCaller(caller); err != nil {
		return nil, 0, err
	}
	profiles, total, err := u.profileRepo.List(ctx, profileScope(caller), page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return profiles, total, nil
}

func (u *profileUsecase) GetProfile(ctx context.Context, caller domain.Caller, id int64) (*domain.UserProfile, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	profile, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, "Profile not found")
	}
	if !canViewProfile(caller, profile) {
		return nil, apperror.NotFound("Profile not found")
	}
	return profile, nil
}

// UpdateProfile lets the owner replace scalar fields, skills and previous titles. Staff may
// read any profile but not modify it.
func (u *profileUsecase) UpdateProfile(ctx context.Context, caller domain.Caller, profile *domain.UserProfile) (*domain.UserProfile, error) {
	// 1. Visibility then ownership
	existing, err := u.GetProfile(ctx, caller, profile.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != caller.UserID {
		u.audit.LogAccessDenied(ctx, caller.UserID, "profile", profile.ID)
		return nil, apperror.Forbidden("You can only modify your own profile")
	}

	// 2. Validate
	if profile.RoleType == "" {
		profile.RoleType = existing.RoleType
	}
	if !profile.RoleType.Valid() {
		return nil, apperror.Validation("Invalid input", apperror.FieldError{
			Field:   "role_type",
			Message: fmt.Sprintf("%q is not a valid choice", profile.RoleType),
		})
	}
	missing, err := missingSkillIDs(ctx, u.skillRepo, profile.SkillIDs())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("Invalid input", apperror.FieldError{
			Field:   "skill_ids",
			Message: fmt.Sprintf("Invalid pk %v - skill does not exist", missing),
		})
	}

	// 3. Persist atomically
	profile.UserID = existing.UserID
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.profileRepo.Update(ctx, profile)
	})
	if err != nil {
		return nil, toAppError(err, "Profile not found")
	}

	updated, err := u.profileRepo.GetByID(ctx, profile.ID)
	if err != nil {
		return nil, toAppError(err, "Profile not found")
	}
	return updated, nil
}
