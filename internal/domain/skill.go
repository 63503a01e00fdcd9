package domain

import "context"

type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func skillIDs(skills []Skill) []int64 {
	ids := make([]int64, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.ID)
	}
	return ids
}

type SkillRepository interface {
	Create(ctx context.Context, skill *Skill) error
	GetByID(ctx context.Context, id int64) (*Skill, error)
	List(ctx context.Context, search string, page Page) ([]Skill, int64, error)
	// ExistingIDs returns the subset of ids that exist
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	Update(ctx context.Context, skill *Skill) error
	Delete(ctx context.Context, id int64) error
}

type SkillUsecase interface {
	ListSkills(ctx context.Context, search string, page Page) ([]Skill, int64, error)
	GetSkill(ctx context.Context, id int64) (*Skill, error)
	CreateSkill(ctx context.Context, caller Caller, skill *Skill) error
	UpdateSkill(ctx context.Context, caller Caller, skill *Skill) error
	DeleteSkill(ctx context.Context, caller Caller, id int64) error
}
