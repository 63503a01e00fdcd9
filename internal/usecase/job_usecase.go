package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"
)

type jobUsecase struct {
	tx          domain.Transactor
	jobRepo     domain.JobRepository
	companyRepo domain.CompanyRepository
	skillRepo   domain.SkillRepository
	cache       JobCache
	audit       *audit.Logger
}

func NewJobUsecase(
	tx domain.Transactor,
	jobRepo domain.JobRepository,
	companyRepo domain.CompanyRepository,
	skillRepo domain.SkillRepository,
	cache JobCache,
	auditLogger *audit.Logger,
) domain.JobUsecase {
	return &jobUsecase{
		tx:          tx,
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		skillRepo:   skillRepo,
		cache:       cache,
		audit:       auditLogger,
	}
}

// ListJobs returns one page of postings matching every set filter, newest first
func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter, page domain.Page) ([]domain.JobPosting, int64, error) {
	// 1. Validate enum filters
	var fields []apperror.FieldError
	if filter.EmploymentType != nil && !filter.EmploymentType.Valid() {
		fields = append(fields, apperror.FieldError{
			Field:   "employment_type",
			Message: fmt.Sprintf("%q is not a valid choice", *filter.EmploymentType),
		})
	}
	if filter.ExperienceLevel != nil && !filter.ExperienceLevel.Valid() {
		fields = append(fields, apperror.FieldError{
			Field:   "experience_level",
			Message: fmt.Sprintf("%q is not a valid choice", *filter.ExperienceLevel),
		})
	}
	if len(fields) > 0 {
		return nil, 0, apperror.Validation("Invalid filter", fields...)
	}
	filter.Search = strings.TrimSpace(filter.Search)

	// 2. Serve from cache when possible
	if cached, ok := u.cache.GetList(ctx, filter, page); ok {
		return cached.Items, cached.Total, nil
	}

	// 3. Query storage
	jobs, total, err := u.jobRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	u.cache.SetList(ctx, filter, page, &JobListPage{Items: jobs, Total: total})
	return jobs, total, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobPosting, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, "Job not found")
	}
	return job, nil
}

// CreateJob requires the caller to own the referenced company; created_by comes from the caller
func (u *jobUsecase) CreateJob(ctx context.Context, caller domain.Caller, job *domain.JobPosting) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	// 1. Business validation
	if err := u.validate(ctx, caller, job); err != nil {
		return err
	}

	// 2. Persist posting and skill sets together
	job.CreatedBy = caller.UserID
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.jobRepo.Create(ctx, job)
	})
	if err != nil {
		return toAppError(err, "Job not found")
	}

	u.cache.Invalidate(ctx)
	return nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, caller domain.Caller, job *domain.JobPosting) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Only the creator may change a posting
		existing, err := u.jobRepo.GetByID(ctx, job.ID)
		if err != nil {
			return toAppError(err, "Job not found")
		}
		if existing.CreatedBy != caller.UserID {
			u.audit.LogAccessDenied(ctx, caller.UserID, "job", job.ID)
			return apperror.Forbidden("You do not have permission to modify this job")
		}

		// 2. Business validation against the (possibly new) company
		if err := u.validate(ctx, caller, job); err != nil {
			return err
		}

		// 3. Persist
		return u.jobRepo.Update(ctx, job)
	})
	if err != nil {
		return toAppError(err, "Job not found")
	}

	u.cache.Invalidate(ctx)
	return nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, caller domain.Caller, id int64) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.jobRepo.GetByID(ctx, id)
		if err != nil {
			return toAppError(err, "Job not found")
		}
		if existing.CreatedBy != caller.UserID {
			u.audit.LogAccessDenied(ctx, caller.UserID, "job", id)
			return apperror.Forbidden("You do not have permission to delete this job")
		}
		return u.jobRepo.Delete(ctx, id)
	})
	if err != nil {
		return toAppError(err, "Job not found")
	}

	u.cache.Invalidate(ctx)
	return nil
}

// validate checks salary range, company ownership and skill references
func (u *jobUsecase) validate(ctx context.Context, caller domain.Caller, job *domain.JobPosting) error {
	if !job.SalaryRangeValid() {
		return apperror.Validation("Invalid input", apperror.FieldError{
			Field:   "salary_min",
			Message: "salary_min cannot be greater than salary_max",
		})
	}

	company, err := u.companyRepo.GetByID(ctx, job.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Validation("Invalid input", apperror.FieldError{
				Field:   "company_id",
				Message: fmt.Sprintf("Invalid pk %d - company does not exist", job.CompanyID),
			})
		}
		return apperror.Internal(err)
	}
	if company.CreatedBy != caller.UserID {
		u.audit.LogAccessDenied(ctx, caller.UserID, "company", company.ID)
		return apperror.Forbidden("You can only post jobs for companies you created")
	}
	job.CompanyName = company.Name
	job.CompanyOwnerID = company.CreatedBy

	if fe := u.checkSkills(ctx, "required_skills", job.RequiredSkillIDs()); fe != nil {
		return fe
	}
	if fe := u.checkSkills(ctx, "preferred_skills", job.PreferredSkillIDs()); fe != nil {
		return fe
	}
	return nil
}

func (u *jobUsecase) checkSkills(ctx context.Context, field string, ids []int64) error {
	missing, err := missingSkillIDs(ctx, u.skillRepo, ids)
	if err != nil {
		return apperror.Internal(err)
	}
	if len(missing) > 0 {
		return apperror.Validation("Invalid input", apperror.FieldError{
			Field:   field,
			Message: fmt.Sprintf("Invalid pk %v - skill does not exist", missing),
		})
	}
	return nil
}

// missingSkillIDs returns the ids that have no skill row
func missingSkillIDs(ctx context.Context, repo domain.SkillRepository, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	existing, err := repo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
