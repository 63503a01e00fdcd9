package usecase

import (
	"context"
	"errors"
	"fmt"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/internal/domain/matching"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"
)

type matchUsecase struct {
	tx          domain.Transactor
	matchRepo   domain.MatchRepository
	jobRepo     domain.JobRepository
	profileRepo domain.ProfileRepository
	audit       *audit.Logger
}

func NewMatchUsecase(
	tx domain.Transactor,
	matchRepo domain.MatchRepository,
	jobRepo domain.JobRepository,
	profileRepo domain.ProfileRepository,
	auditLogger *audit.Logger,
) domain.MatchUsecase {
	return &matchUsecase{
		tx:          tx,
		matchRepo:   matchRepo,
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		audit:       auditLogger,
	}
}

func (u *matchUsecase) ListMatches(ctx context.Context, caller domain.Caller, page domain.Page) ([]domain.Match, int64, error) {
	if err := requireCaller(caller); err != nil {
		return nil, 0, err
	}
	matches, total, err := u.matchRepo.List(ctx, recordScope(caller), page)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return matches, total, nil
}

func (u *matchUsecase) GetMatch(ctx context.Context, caller domain.Caller, id int64) (*domain.Match, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	m, err := u.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, "Match not found")
	}
	if !inRecordScope(caller, m.JobOwnerID, m.CandidateID) {
		return nil, apperror.NotFound("Match not found")
	}
	return m, nil
}

// CalculateMatches scores employers' jobs against every candidate, or the calling candidate
// against every active job. Pairs scoring at least minScore are upserted and returned; the
// rest only refresh an ALGORITHM row that already exists.
func (u *matchUsecase) CalculateMatches(ctx context.Context, caller domain.Caller, minScore float64) ([]domain.Match, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if minScore < 0 || minScore > 100 {
		return nil, apperror.Validation("Invalid input", apperror.FieldError{
			Field:   "min_score",
			Message: "Must be between 0 and 100",
		})
	}

	var results []domain.Match
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		pairs, err := u.pairsFor(ctx, caller)
		if err != nil {
			return err
		}

		results = make([]domain.Match, 0, len(pairs))
		for _, p := range pairs {
			res := matching.Calculate(p.candidate.SkillIDs(), p.job.RequiredSkillIDs(), p.job.PreferredSkillIDs())
			m := domain.Match{
				JobID:             p.job.ID,
				CandidateID:       p.candidate.UserID,
				Score:             res.Score,
				JobTitle:          p.job.Title,
				CandidateUsername: p.candidate.Username,
				JobOwnerID:        p.job.CompanyOwnerID,
			}

			// Below the threshold nothing new is stored, but a row from an earlier run
			// must not keep its old score.
			if res.Score < minScore {
				if err := u.matchRepo.RefreshScore(ctx, &m); err != nil {
					return err
				}
				continue
			}

			stored, err := u.matchRepo.Upsert(ctx, &m)
			if err != nil {
				return err
			}
			if stored {
				results = append(results, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, toAppError(err, "Profile not found")
	}

	u.audit.Log(ctx, audit.Event{
		Event:   audit.EventMatchesCalculated,
		UserID:  caller.UserID,
		Details: map[string]interface{}{"stored": len(results), "min_score": minScore},
	})
	return results, nil
}

type matchPair struct {
	job       *domain.JobPosting
	candidate *domain.UserProfile
}

func (u *matchUsecase) pairsFor(ctx context.Context, caller domain.Caller) ([]matchPair, error) {
	if caller.IsEmployer {
		jobs, err := u.jobRepo.ListByCompanyOwner(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		candidates, err := u.profileRepo.ListCandidates(ctx)
		if err != nil {
			return nil, err
		}
		pairs := make([]matchPair, 0, len(jobs)*len(candidates))
		for i := range jobs {
			for j := range candidates {
				pairs = append(pairs, matchPair{job: &jobs[i], candidate: &candidates[j]})
			}
		}
		return pairs, nil
	}

	profile, err := u.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	jobs, err := u.jobRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	pairs := make([]matchPair, 0, len(jobs))
	for i := range jobs {
		pairs = append(pairs, matchPair{job: &jobs[i], candidate: profile})
	}
	return pairs, nil
}

// CreateManualMatch records an owner-chosen score for a job and candidate
func (u *matchUsecase) CreateManualMatch(ctx context.Context, caller domain.Caller, m *domain.Match) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if m.Score < 0 || m.Score > 100 {
		return apperror.Validation("Invalid input", apperror.FieldError{Field: "score", Message: "Must be between 0 and 100"})
	}
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.createManual(ctx, caller, m)
	})
	return toAppError(err, "Job not found")
}

func (u *matchUsecase) createManual(ctx context.Context, caller domain.Caller, m *domain.Match) error {
	job, err := u.jobRepo.GetByID(ctx, m.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Validation("Invalid input", apperror.FieldError{
				Field:   "job_id",
				Message: fmt.Sprintf("Invalid pk %d - job does not exist", m.JobID),
			})
		}
		return apperror.Internal(err)
	}
	if job.CompanyOwnerID != caller.UserID {
		u.audit.LogAccessDenied(ctx, caller.UserID, "job", job.ID)
		return apperror.Forbidden("Only the job owner can create matches for this job")
	}

	candidate, err := u.profileRepo.GetByUserID(ctx, m.CandidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Validation("Invalid input", apperror.FieldError{
				Field:   "candidate_id",
				Message: fmt.Sprintf("Invalid pk %d - candidate does not exist", m.CandidateID),
			})
		}
		return apperror.Internal(err)
	}

	m.MatchType = domain.MatchTypeManual
	m.JobTitle = job.Title
	m.CandidateUsername = candidate.Username
	m.JobOwnerID = job.CompanyOwnerID
	if err := u.matchRepo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return apperror.Conflict("A match for this job and candidate already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *matchUsecase) DeleteMatch(ctx context.Context, caller domain.Caller, id int64) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		m, err := u.GetMatch(ctx, caller, id)
		if err != nil {
			return err
		}
		if m.JobOwnerID != caller.UserID {
			u.audit.LogAccessDenied(ctx, caller.UserID, "match", id)
			return apperror.Forbidden("Only the job owner can delete this match")
		}
		return u.matchRepo.Delete(ctx, id)
	})
	return toAppError(err, "Match not found")
}
