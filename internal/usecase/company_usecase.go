package usecase

import (
	"context"
	"strings"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"
)

type companyUsecase struct {
	tx          domain.Transactor
	companyRepo domain.CompanyRepository
	cache       JobCache
	audit       *audit.Logger
}

func NewCompanyUsecase(tx domain.Transactor, companyRepo domain.CompanyRepository, cache JobCache, auditLogger *audit.Logger) domain.CompanyUsecase {
	return &companyUsecase{tx: tx, companyRepo: companyRepo, cache: cache, audit: auditLogger}
}

func (u *companyUsecase) ListCompanies(ctx context.Context, search string, page domain.Page) ([]domain.Company, int64, error) {
	companies, total, err := u.companyRepo.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return companies, total, nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, "Company not found")
	}
	return company, nil
}

// CreateCompany is open to employers only and stamps created_by from the caller,
// ignoring any client value
func (u *companyUsecase) CreateCompany(ctx context.Context, caller domain.Caller, company *domain.Company) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	// Applications on a non-employer's jobs would fall outside every record scope
	if !caller.IsEmployer {
		u.audit.LogAccessDenied(ctx, caller.UserID, "company", 0)
		return apperror.Forbidden("Only employers can create companies")
	}
	company.CreatedBy = caller.UserID
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.companyRepo.Create(ctx, company)
	})
	return toAppError(err, "Company not found")
}

func (u *companyUsecase) UpdateCompany(ctx context.Context, caller domain.Caller, company *domain.Company) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.authorizeOwner(ctx, caller, company.ID); err != nil {
			return err
		}
		return u.companyRepo.Update(ctx, company)
	})
	if err != nil {
		return toAppError(err, "Company not found")
	}
	// Job listings embed the company name
	u.cache.Invalidate(ctx)
	return nil
}

func (u *companyUsecase) DeleteCompany(ctx context.Context, caller domain.Caller, id int64) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.authorizeOwner(ctx, caller, id); err != nil {
			return err
		}
		return u.companyRepo.Delete(ctx, id)
	})
	if err != nil {
		return toAppError(err, "Company not found")
	}
	u.cache.Invalidate(ctx)
	return nil
}

func (u *companyUsecase) authorizeOwner(ctx context.Context, caller domain.Caller, id int64) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	existing, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return toAppError(err, "Company not found")
	}
	if existing.CreatedBy != caller.UserID {
		u.audit.LogAccessDenied(ctx, caller.UserID, "company", id)
		return apperror.Forbidden("You do not have permission to modify this company")
	}
	return nil
}
