package domain

import (
	"context"
	"time"
)

// Company is world-readable; only its creator may change it. CreatedBy is set once at creation.
type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context, search string, page Page) ([]Company, int64, error)
	// Update never touches created_by
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id int64) error
}

type CompanyUsecase interface {
	ListCompanies(ctx context.Context, search string, page Page) ([]Company, int64, error)
	GetCompany(ctx context.Context, id int64) (*Company, error)
	CreateCompany(ctx context.Context, caller Caller, company *Company) error
	UpdateCompany(ctx context.Context, caller Caller, company *Company) error
	DeleteCompany(ctx context.Context, caller Caller, id int64) error
}
