package v1

import (
	"fmt"
	"net/http"
	"strings"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		applications.GET("", handler.List)
		applications.GET("/export", handler.Export)
		applications.GET("/:id", handler.Get)
		applications.POST("/:id/update_status", handler.UpdateStatus)
	}
}

// UpdateStatusRequest is the request payload for an application status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseApplicationFilter(c *gin.Context) (domain.ApplicationFilter, error) {
	var filter domain.ApplicationFilter
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := domain.ApplicationStatus(strings.ToUpper(v))
		filter.Status = &status
	}
	jobID, err := queryInt64(c, "job_id")
	if err != nil {
		return filter, err
	}
	filter.JobID = jobID
	return filter, nil
}

// ListApplications godoc
// @Summary      List applications
// @Description  Employers see applications to their jobs, everyone else their own
// @Tags         applications
// @Produce      json
// @Param        status     query     string  false  "Status filter"
// @Param        job_id     query     int     false  "Job filter"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=response.ListData}
// @Failure      400        {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	filter, err := parseApplicationFilter(c)
	if err != nil {
		c.Error(err)
		return
	}
	page := parsePage(c)

	apps, total, err := h.applicationUC.ListApplications(c.Request.Context(), caller(c), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, http.StatusOK, "Applications retrieved", apps, total, page.Page, page.PageSize)
}

// GetApplication godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	app, err := h.applicationUC.GetApplication(c.Request.Context(), caller(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// UpdateStatus godoc
// @Summary      Change an application's status
// @Description  Only the creator of the job's company may change the status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/update_status [post]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), caller(c), id,
		domain.ApplicationStatus(strings.ToUpper(strings.TrimSpace(req.Status))))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Export godoc
// @Summary      Export applications to Excel
// @Description  Employer only. Honors the same filters as the list endpoint.
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query     string  false  "Status filter"
// @Param        job_id  query     int     false  "Job filter"
// @Success      200     {file}    binary
// @Failure      403     {object}  response.Response
// @Router       /applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	filter, err := parseApplicationFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	data, filename, err := h.applicationUC.ExportApplications(c.Request.Context(), caller(c), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
