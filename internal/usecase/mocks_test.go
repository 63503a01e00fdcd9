package usecase_test

import (
	"context"
	"time"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockTransactor struct{}

func (MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// CountingTransactor records how often a usecase opened a transaction
type CountingTransactor struct {
	Calls int
}

func (t *CountingTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockProfileRepo) List(ctx context.Context, scope domain.ProfileScope, page domain.Page) ([]domain.UserProfile, int64, error) {
	args := m.Called(ctx, scope, page)
	return args.Get(0).([]domain.UserProfile), args.Get(1).(int64), args.Error(2)
}
func (m *MockProfileRepo) ListCandidates(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}
func (m *MockSkillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) List(ctx context.Context, search string, page domain.Page) ([]domain.Skill, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]domain.Skill), args.Get(1).(int64), args.Error(2)
}
func (m *MockSkillRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]int64), args.Error(1)
}
func (m *MockSkillRepo) Update(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}
func (m *MockSkillRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}
func (m *MockCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyRepo) List(ctx context.Context, search string, page domain.Page) ([]domain.Company, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]domain.Company), args.Get(1).(int64), args.Error(2)
}
func (m *MockCompanyRepo) Update(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}
func (m *MockCompanyRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPosting), args.Error(1)
}
func (m *MockJobRepo) List(ctx context.Context, filter domain.JobFilter, page domain.Page) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.JobPosting), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) ListActive(ctx context.Context) ([]domain.JobPosting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.JobPosting), args.Error(1)
}
func (m *MockJobRepo) ListByCompanyOwner(ctx context.Context, userID int64) ([]domain.JobPosting, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.JobPosting), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) List(ctx context.Context, scope domain.RecordScope, filter domain.ApplicationFilter, page domain.Page) ([]domain.Application, int64, error) {
	args := m.Called(ctx, scope, filter, page)
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) ListAll(ctx context.Context, scope domain.RecordScope, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID, applicantID int64) (bool, error) {
	args := m.Called(ctx, jobID, applicantID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (time.Time, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(time.Time), args.Error(1)
}

type MockMatchRepo struct {
	mock.Mock
}

func (m *MockMatchRepo) Upsert(ctx context.Context, match *domain.Match) (bool, error) {
	args := m.Called(ctx, match)
	return args.Bool(0), args.Error(1)
}
func (m *MockMatchRepo) RefreshScore(ctx context.Context, match *domain.Match) error {
	return m.Called(ctx, match).Error(0)
}
func (m *MockMatchRepo) Create(ctx context.Context, match *domain.Match) error {
	return m.Called(ctx, match).Error(0)
}
func (m *MockMatchRepo) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}
func (m *MockMatchRepo) List(ctx context.Context, scope domain.RecordScope, page domain.Page) ([]domain.Match, int64, error) {
	args := m.Called(ctx, scope, page)
	return args.Get(0).([]domain.Match), args.Get(1).(int64), args.Error(2)
}
func (m *MockMatchRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockJobCache struct {
	mock.Mock
}

func (m *MockJobCache) GetList(ctx context.Context, filter domain.JobFilter, page domain.Page) (*usecase.JobListPage, bool) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*usecase.JobListPage), args.Bool(1)
}
func (m *MockJobCache) SetList(ctx context.Context, filter domain.JobFilter, page domain.Page, result *usecase.JobListPage) {
	m.Called(ctx, filter, page, result)
}
func (m *MockJobCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type stubTokens struct{}

func (stubTokens) Issue(userID int64) (string, time.Time, error) {
	return "token", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

var (
	candidate = domain.Caller{UserID: 1, Username: "alice"}
	employer  = domain.Caller{UserID: 2, Username: "acme", IsEmployer: true}
	staff     = domain.Caller{UserID: 3, Username: "root", IsStaff: true}
	stranger  = domain.Caller{UserID: 9, Username: "mallory", IsEmployer: true}
)
