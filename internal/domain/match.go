package domain

import (
	"context"
	"time"
)

type MatchType string

const (
	MatchTypeAlgorithm MatchType = "ALGORITHM"
	MatchTypeManual    MatchType = "MANUAL"
)

func (t MatchType) Valid() bool {
	return t == MatchTypeAlgorithm || t == MatchTypeManual
}

// Match scores one candidate against one job. (JobID, CandidateID) is unique.
type Match struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID int64     `json:"candidate_id"`
	Score       float64   `json:"score"`
	MatchType   MatchType `json:"match_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data
	JobTitle          string `json:"job_title,omitempty"`
	CandidateUsername string `json:"candidate_username,omitempty"`
	JobOwnerID        int64  `json:"-"`
}

type MatchRepository interface {
	// Upsert inserts or refreshes an ALGORITHM match in place. Manual matches are left
	// untouched, in which case stored is false.
	Upsert(ctx context.Context, m *Match) (stored bool, err error)
	// RefreshScore rewrites the score of an existing ALGORITHM row for the pair without
	// inserting one. Missing and MANUAL rows are left as they are.
	RefreshScore(ctx context.Context, m *Match) error
	// Create inserts a new match and returns ErrConflict when the pair exists
	Create(ctx context.Context, m *Match) error
	GetByID(ctx context.Context, id int64) (*Match, error)
	List(ctx context.Context, scope RecordScope, page Page) ([]Match, int64, error)
	Delete(ctx context.Context, id int64) error
}

type MatchUsecase interface {
	ListMatches(ctx context.Context, caller Caller, page Page) ([]Match, int64, error)
	GetMatch(ctx context.Context, caller Caller, id int64) (*Match, error)
	CalculateMatches(ctx context.Context, caller Caller, minScore float64) ([]Match, error)
	CreateManualMatch(ctx context.Context, caller Caller, m *Match) error
	DeleteMatch(ctx context.Context, caller Caller, id int64) error
}
