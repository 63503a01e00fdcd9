package v1

import (
	"net/http"
	"strings"
	"time"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC         domain.JobUsecase
	applicationUC domain.ApplicationUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &JobHandler{jobUC: jobUC, applicationUC: applicationUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/:id", handler.Get)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.POST("/:id/apply", handler.Apply)
	}
}

type JobRequest struct {
	CompanyID           int64     `json:"company_id" binding:"required,gt=0"`
	Title               string    `json:"title" binding:"required,max=255"`
	Description         string    `json:"description" binding:"required"`
	Requirements        string    `json:"requirements"`
	Location            string    `json:"location" binding:"max=255"`
	SalaryMin           *float64  `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax           *float64  `json:"salary_max" binding:"omitempty,gte=0"`
	EmploymentType      string    `json:"employment_type" binding:"required,employment_type"`
	ExperienceLevel     string    `json:"experience_level" binding:"required,experience_level"`
	IsRemote            bool      `json:"is_remote"`
	IsActive            *bool     `json:"is_active"`
	ApplicationDeadline time.Time `json:"application_deadline" binding:"required"`
	RequiredSkillIDs    []int64   `json:"required_skill_ids" binding:"dive,gt=0"`
	PreferredSkillIDs   []int64   `json:"preferred_skill_ids" binding:"dive,gt=0"`
}

func (r JobRequest) toDomain(id int64) *domain.JobPosting {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.JobPosting{
		ID:                  id,
		CompanyID:           r.CompanyID,
		Title:               r.Title,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Location:            r.Location,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		EmploymentType:      domain.EmploymentType(r.EmploymentType),
		ExperienceLevel:     domain.ExperienceLevel(r.ExperienceLevel),
		IsRemote:            r.IsRemote,
		IsActive:            active,
		ApplicationDeadline: r.ApplicationDeadline,
		RequiredSkills:      skillRefs(r.RequiredSkillIDs),
		PreferredSkills:     skillRefs(r.PreferredSkillIDs),
	}
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

// parseJobFilter reads the listing filters from the query string
func parseJobFilter(c *gin.Context) (domain.JobFilter, error) {
	var filter domain.JobFilter
	var err error

	if filter.IsActive, err = queryBool(c, "is_active"); err != nil {
		return filter, err
	}
	if filter.IsRemote, err = queryBool(c, "is_remote"); err != nil {
		return filter, err
	}
	if filter.CompanyID, err = queryInt64(c, "company_id"); err != nil {
		return filter, err
	}
	if v := strings.TrimSpace(c.Query("employment_type")); v != "" {
		et := domain.EmploymentType(strings.ToUpper(v))
		filter.EmploymentType = &et
	}
	if v := strings.TrimSpace(c.Query("experience_level")); v != "" {
		el := domain.ExperienceLevel(strings.ToUpper(v))
		filter.ExperienceLevel = &el
	}
	filter.Search = c.Query("search")
	return filter, nil
}

// ListJobs godoc
// @Summary      List job postings
// @Description  Filters compose with AND. Results are newest first.
// @Tags         jobs
// @Produce      json
// @Param        is_active         query     bool    false  "Active postings only"
// @Param        employment_type   query     string  false  "FULL_TIME, PART_TIME, CONTRACT or INTERNSHIP"
// @Param        experience_level  query     string  false  "ENTRY, MID, SENIOR, LEAD or EXECUTIVE"
// @Param        is_remote         query     bool    false  "Remote postings"
// @Param        company_id        query     int     false  "Company"
// @Param        search            query     string  false  "Matches title, description, requirements or location"
// @Param        page              query     int     false  "Page number"
// @Param        page_size         query     int     false  "Page size"
// @Success      200               {object}  response.Response{data=response.ListData}
// @Failure      400               {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	filter, err := parseJobFilter(c)
	if err != nil {
		c.Error(err)
		return
	}
	page := parsePage(c)

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, http.StatusOK, "Jobs retrieved", jobs, total, page.Page, page.PageSize)
}

// GetJob godoc
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobPosting}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// CreateJob godoc
// @Summary      Create a job posting
// @Description  The caller must have created the referenced company
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job"
// @Success      201  {object}  response.Response{data=domain.JobPosting}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job := req.toDomain(0)
	if err := h.jobUC.CreateJob(c.Request.Context(), caller(c), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job posting (creator only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int         true  "Job ID"
// @Param        job  body      JobRequest  true  "Job"
// @Success      200  {object}  response.Response{data=domain.JobPosting}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job := req.toDomain(id)
	if err := h.jobUC.UpdateJob(c.Request.Context(), caller(c), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job posting (creator only)
// @Tags         jobs
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), caller(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// Apply godoc
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int           true   "Job ID"
// @Param        body  body      ApplyRequest  false  "Cover letter"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ApplyRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	app, err := h.applicationUC.ApplyToJob(c.Request.Context(), caller(c), id, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}
