package usecase

import (
	"context"
	"errors"
	"strings"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
)

type skillUsecase struct {
	tx        domain.Transactor
	skillRepo domain.SkillRepository
	cache     JobCache
}

func NewSkillUsecase(tx domain.Transactor, skillRepo domain.SkillRepository, cache JobCache) domain.SkillUsecase {
	return &skillUsecase{tx: tx, skillRepo: skillRepo, cache: cache}
}

func (u *skillUsecase) ListSkills(ctx context.Context, search string, page domain.Page) ([]domain.Skill, int64, error) {
	skills, total, err := u.skillRepo.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return skills, total, nil
}

func (u *skillUsecase) GetSkill(ctx context.Context, id int64) (*domain.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, "Skill not found")
	}
	return skill, nil
}

// CreateSkill is open to any authenticated caller; names are unique
func (u *skillUsecase) CreateSkill(ctx context.Context, caller domain.Caller, skill *domain.Skill) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	skill.Name = strings.TrimSpace(skill.Name)
	if skill.Name == "" {
		return apperror.Validation("Invalid input", apperror.FieldError{Field: "name", Message: "This field is required"})
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.skillRepo.Create(ctx, skill)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return apperror.Conflict("A skill with this name already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

// UpdateSkill is restricted to staff
func (u *skillUsecase) UpdateSkill(ctx context.Context, caller domain.Caller, skill *domain.Skill) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	skill.Name = strings.TrimSpace(skill.Name)

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.authorizeStaff(ctx, caller, skill.ID, "Only staff can modify skills"); err != nil {
			return err
		}
		if err := u.skillRepo.Update(ctx, skill); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return apperror.Conflict("A skill with this name already exists")
			}
			return toAppError(err, "Skill not found")
		}
		return nil
	})
	if err != nil {
		return toAppError(err, "Skill not found")
	}
	// Job listings embed skill names
	u.cache.Invalidate(ctx)
	return nil
}

func (u *skillUsecase) DeleteSkill(ctx context.Context, caller domain.Caller, id int64) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.authorizeStaff(ctx, caller, id, "Only staff can delete skills"); err != nil {
			return err
		}
		return u.skillRepo.Delete(ctx, id)
	})
	if err != nil {
		return toAppError(err, "Skill not found")
	}
	u.cache.Invalidate(ctx)
	return nil
}

func (u *skillUsecase) authorizeStaff(ctx context.Context, caller domain.Caller, id int64, denied string) error {
	if _, err := u.skillRepo.GetByID(ctx, id); err != nil {
		return toAppError(err, "Skill not found")
	}
	if !caller.IsStaff {
		return apperror.Forbidden(denied)
	}
	return nil
}
