package domain

import (
	"context"
	"time"
)

type RoleType string

const (
	RoleCandidate RoleType = "CANDIDATE"
	RoleEmployer  RoleType = "EMPLOYER"
	RoleAdmin     RoleType = "ADMIN"
)

var RoleTypes = []RoleType{RoleCandidate, RoleEmployer, RoleAdmin}

func (r RoleType) Valid() bool {
	for _, v := range RoleTypes {
		if r == v {
			return true
		}
	}
	return false
}

// PreviousTitle is a past position listed on a profile. Rows are removed with their profile.
type PreviousTitle struct {
	ID            int64  `json:"id"`
	UserProfileID int64  `json:"-"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Duration      string `json:"duration"`
}

// UserProfile is the one-to-one extension of an account
type UserProfile struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	Username          string          `json:"username"`
	Email             string          `json:"email"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	IsEmployer        bool            `json:"is_employer"`
	Bio               string          `json:"bio"`
	ImageURL          string          `json:"image_url"`
	Age               *int            `json:"age"`
	Location          string          `json:"location"`
	RoleType          RoleType        `json:"role_type"`
	CurrentTitle      string          `json:"current_title"`
	YearsOfExperience int             `json:"years_of_experience"`
	ResumeURL         string          `json:"resume_url"`
	LinkedInURL       string          `json:"linkedin_url"`
	GithubURL         string          `json:"github_url"`
	PortfolioURL      string          `json:"portfolio_url"`
	TwitterURL        string          `json:"twitter_url"`
	PersonalWebsite   string          `json:"personal_website"`
	Skills            []Skill         `json:"skills"`
	PreviousTitles    []PreviousTitle `json:"previous_titles"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Employer reports whether the profile manages company postings
func (p *UserProfile) Employer() bool {
	return p.IsEmployer || p.RoleType == RoleEmployer
}

// SkillIDs returns the ids of the profile's skills
func (p *UserProfile) SkillIDs() []int64 {
	return skillIDs(p.Skills)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *UserProfile) error
	GetByID(ctx context.Context, id int64) (*UserProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*UserProfile, error)
	List(ctx context.Context, scope ProfileScope, page Page) ([]UserProfile, int64, error)
	// ListCandidates returns every non-employer profile with its skills
	ListCandidates(ctx context.Context) ([]UserProfile, error)
	// Update writes scalar fields and replaces skills and previous titles
	Update(ctx context.Context, profile *UserProfile) error
}

type ProfileUsecase interface {
	ListProfiles(ctx context.Context, caller Caller, page Page) ([]UserProfile, int64, error)
	GetProfile(ctx context.Context, caller Caller, id int64) (*UserProfile, error)
	UpdateProfile(ctx context.Context, caller Caller, profile *UserProfile) (*UserProfile, error)
}
