package v1

import (
	"net/http"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(protected *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}

	skills := protected.Group("/skills")
	{
		skills.GET("", handler.List)
		skills.POST("", handler.Create)
		skills.GET("/:id", handler.Get)
		skills.PUT("/:id", handler.Update)
		skills.DELETE("/:id", handler.Delete)
	}
}

type SkillRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// ListSkills godoc
// @Summary      List skills
// @Tags         skills
// @Produce      json
// @Param        search     query     string  false  "Matches name or description"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=response.ListData}
// @Router       /skills [get]
// @Security     BearerAuth
func (h *SkillHandler) List(c *gin.Context) {
	page := parsePage(c)
	skills, total, err := h.skillUC.ListSkills(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, http.StatusOK, "Skills retrieved", skills, total, page.Page, page.PageSize)
}

// GetSkill godoc
// @Summary      Get a skill
// @Tags         skills
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response{data=domain.Skill}
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [get]
// @Security     BearerAuth
func (h *SkillHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	skill, err := h.skillUC.GetSkill(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill retrieved", skill)
}

// CreateSkill godoc
// @Summary      Create a skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        skill  body      SkillRequest  true  "Skill"
// @Success      201    {object}  response.Response{data=domain.Skill}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /skills [post]
// @Security     BearerAuth
func (h *SkillHandler) Create(c *gin.Context) {
	var req SkillRequest
	if !bindJSON(c, &req) {
		return
	}
	skill := &domain.Skill{Name: req.Name, Description: req.Description}
	if err := h.skillUC.CreateSkill(c.Request.Context(), caller(c), skill); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill created", skill)
}

// UpdateSkill godoc
// @Summary      Update a skill (staff only)
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        id     path      int           true  "Skill ID"
// @Param        skill  body      SkillRequest  true  "Skill"
// @Success      200    {object}  response.Response{data=domain.Skill}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /skills/{id} [put]
// @Security     BearerAuth
func (h *SkillHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SkillRequest
	if !bindJSON(c, &req) {
		return
	}
	skill := &domain.Skill{ID: id, Name: req.Name, Description: req.Description}
	if err := h.skillUC.UpdateSkill(c.Request.Context(), caller(c), skill); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill updated", skill)
}

// DeleteSkill godoc
// @Summary      Delete a skill (staff only)
// @Tags         skills
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [delete]
// @Security     BearerAuth
func (h *SkillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.skillUC.DeleteSkill(c.Request.Context(), caller(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill deleted", nil)
}
