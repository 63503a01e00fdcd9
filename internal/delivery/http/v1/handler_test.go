package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"matchmakr-backend/config"
	"matchmakr-backend/internal/delivery/http/middleware"
	"matchmakr-backend/internal/delivery/http/response"
	v1 "matchmakr-backend/internal/delivery/http/v1"
	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"
	"matchmakr-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.RegisterGinValidators()
	os.Exit(m.Run())
}

type MockApplicationUC struct {
	mock.Mock
}

func (m *MockApplicationUC) ApplyToJob(ctx context.Context, caller domain.Caller, jobID int64, coverLetter string) (*domain.Application, error) {
	args := m.Called(ctx, caller, jobID, coverLetter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationUC) ListApplications(ctx context.Context, caller domain.Caller, filter domain.ApplicationFilter, page domain.Page) ([]domain.Application, int64, error) {
	args := m.Called(ctx, caller, filter, page)
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationUC) GetApplication(ctx context.Context, caller domain.Caller, id int64) (*domain.Application, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationUC) UpdateApplicationStatus(ctx context.Context, caller domain.Caller, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	args := m.Called(ctx, caller, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationUC) ExportApplications(ctx context.Context, caller domain.Caller, filter domain.ApplicationFilter) ([]byte, string, error) {
	args := m.Called(ctx, caller, filter)
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockJobUC struct {
	mock.Mock
}

func (m *MockJobUC) ListJobs(ctx context.Context, filter domain.JobFilter, page domain.Page) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.JobPosting), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobUC) GetJob(ctx context.Context, id int64) (*domain.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPosting), args.Error(1)
}
func (m *MockJobUC) CreateJob(ctx context.Context, caller domain.Caller, job *domain.JobPosting) error {
	return m.Called(ctx, caller, job).Error(0)
}
func (m *MockJobUC) UpdateJob(ctx context.Context, caller domain.Caller, job *domain.JobPosting) error {
	return m.Called(ctx, caller, job).Error(0)
}
func (m *MockJobUC) DeleteJob(ctx context.Context, caller domain.Caller, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}

var employer = domain.Caller{UserID: 2, Username: "acme", IsEmployer: true}

// newTestEngine mounts handlers behind a stub authentication step
func newTestEngine(as domain.Caller, register func(protected *gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	protected := r.Group("/api/v1")
	protected.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyCaller), as)
		c.Next()
	})
	register(protected)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestApplyHandler(t *testing.T) {
	appUC := new(MockApplicationUC)
	r := newTestEngine(employer, func(g *gin.RouterGroup) {
		v1.NewJobHandler(g, new(MockJobUC), appUC)
	})

	appUC.On("ApplyToJob", mock.Anything, employer, int64(10), "hi").
		Return(&domain.Application{ID: 1, JobID: 10, Status: domain.ApplicationStatusPending}, nil).Once()
	appUC.On("ApplyToJob", mock.Anything, employer, int64(10), "hi").
		Return(nil, apperror.Conflict("You have already applied to this job")).Once()

	t.Run("Created", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/10/apply", strings.NewReader(`{"cover_letter":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decode(t, w).Success)
	})

	t.Run("Duplicate", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/10/apply", strings.NewReader(`{"cover_letter":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "You have already applied to this job", body.Message)
	})
}

func TestUpdateStatusRequiresStatus(t *testing.T) {
	appUC := new(MockApplicationUC)
	r := newTestEngine(employer, func(g *gin.RouterGroup) {
		v1.NewApplicationHandler(g, appUC)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/5/update_status", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"status"`)
	appUC.AssertNotCalled(t, "UpdateApplicationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusNormalizesValue(t *testing.T) {
	appUC := new(MockApplicationUC)
	r := newTestEngine(employer, func(g *gin.RouterGroup) {
		v1.NewApplicationHandler(g, appUC)
	})
	appUC.On("UpdateApplicationStatus", mock.Anything, employer, int64(5), domain.ApplicationStatusReviewed).
		Return(&domain.Application{ID: 5, Status: domain.ApplicationStatusReviewed}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/5/update_status", strings.NewReader(`{"status":"reviewed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	appUC.AssertExpectations(t)
}

func TestExportHandler(t *testing.T) {
	appUC := new(MockApplicationUC)
	r := newTestEngine(employer, func(g *gin.RouterGroup) {
		v1.NewApplicationHandler(g, appUC)
	})
	status := domain.ApplicationStatusPending
	appUC.On("ExportApplications", mock.Anything, employer, domain.ApplicationFilter{Status: &status}).
		Return([]byte("xlsx-bytes"), "applications_20260101_000000.xlsx", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/applications/export?status=PENDING", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "applications_20260101_000000.xlsx")
	assert.Equal(t, "xlsx-bytes", w.Body.String())
}

func TestListJobsParsesFilters(t *testing.T) {
	jobUC := new(MockJobUC)
	r := newTestEngine(employer, func(g *gin.RouterGroup) {
		v1.NewJobHandler(g, jobUC, new(MockApplicationUC))
	})

	remote := true
	companyID := int64(4)
	level := domain.ExperienceSenior
	jobUC.On("ListJobs", mock.Anything, domain.JobFilter{
		IsRemote:        &remote,
		CompanyID:       &companyID,
		ExperienceLevel: &level,
		Search:          "go",
	}, domain.NewPage(2, 5)).Return([]domain.JobPosting{{ID: 1}}, int64(6), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/jobs?is_remote=true&company_id=4&experience_level=senior&search=go&page=2&page_size=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data response.ListData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(6), body.Data.Total)
	assert.Equal(t, 2, body.Data.Page)
	assert.Equal(t, 5, body.Data.PageSize)

	t.Run("Bad boolean", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs?is_active=maybe", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"is_active"`)
	})
}

func TestCreateJobValidatesEnums(t *testing.T) {
	jobUC := new(MockJobUC)
	r := newTestEngine(employer, func(g *gin.RouterGroup) {
		v1.NewJobHandler(g, jobUC, new(MockApplicationUC))
	})

	payload := `{"company_id":4,"title":"Go","description":"d","employment_type":"GIG","experience_level":"MID",
		"application_deadline":"` + time.Now().Add(time.Hour).UTC().Format(time.RFC3339) + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"employment_type"`)
	jobUC.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything)
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	jobUC := new(MockJobUC)
	r := newTestEngine(employer, func(g *gin.RouterGroup) {
		v1.NewJobHandler(g, jobUC, new(MockApplicationUC))
	})
	jobUC.On("GetJob", mock.Anything, int64(3)).Return(nil, errors.New("pq: connection reset"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs/3", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

type rejectAll struct{}

func (rejectAll) Verify(string) (int64, error) { return 0, errors.New("bad token") }

type okHealth struct{}

func (okHealth) Check(context.Context) (map[string]string, bool) {
	return map[string]string{"status": "ok"}, true
}

func TestRouterRequiresToken(t *testing.T) {
	cfg := &config.Config{GinMode: gin.TestMode, FrontendURL: "http://localhost:3000", RateLimitLoginThreshold: 10, RateLimitWindowSeconds: 60}
	r := v1.NewRouter(v1.RouterDeps{
		HealthUC:    okHealth{},
		Tokens:      rejectAll{},
		RateLimiter: middleware.NewRateLimiter(nil, audit.NewNop()),
		Audit:       audit.NewNop(),
		Config:      cfg,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer forged")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
