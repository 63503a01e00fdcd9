package v1

import (
	"net/http"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	companies := protected.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.POST("", handler.Create)
		companies.GET("/:id", handler.Get)
		companies.PUT("/:id", handler.Update)
		companies.DELETE("/:id", handler.Delete)
	}
}

// CompanyRequest carries the writable company fields. created_by is always the caller.
type CompanyRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
	Location    string `json:"location" binding:"max=255"`
}

func (r CompanyRequest) toDomain(id int64) *domain.Company {
	return &domain.Company{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		Location:    r.Location,
	}
}

// ListCompanies godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        search     query     string  false  "Matches name, description or location"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=response.ListData}
// @Router       /companies [get]
// @Security     BearerAuth
func (h *CompanyHandler) List(c *gin.Context) {
	page := parsePage(c)
	companies, total, err := h.companyUC.ListCompanies(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, http.StatusOK, "Companies retrieved", companies, total, page.Page, page.PageSize)
}

// GetCompany godoc
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [get]
// @Security     BearerAuth
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	company, err := h.companyUC.GetCompany(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company retrieved", company)
}

// CreateCompany godoc
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      CompanyRequest  true  "Company"
// @Success      201      {object}  response.Response{data=domain.Company}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /companies [post]
// @Security     BearerAuth
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company := req.toDomain(0)
	if err := h.companyUC.CreateCompany(c.Request.Context(), caller(c), company); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created", company)
}

// UpdateCompany godoc
// @Summary      Update a company (creator only)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Company ID"
// @Param        company  body      CompanyRequest  true  "Company"
// @Success      200      {object}  response.Response{data=domain.Company}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /companies/{id} [put]
// @Security     BearerAuth
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company := req.toDomain(id)
	if err := h.companyUC.UpdateCompany(c.Request.Context(), caller(c), company); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated", company)
}

// DeleteCompany godoc
// @Summary      Delete a company (creator only)
// @Tags         companies
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [delete]
// @Security     BearerAuth
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.companyUC.DeleteCompany(c.Request.Context(), caller(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company deleted", nil)
}
