package v1

import (
	"net/http"
	"strconv"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUC domain.MatchUsecase
}

func NewMatchHandler(protected *gin.RouterGroup, matchUC domain.MatchUsecase) {
	handler := &MatchHandler{matchUC: matchUC}

	matches := protected.Group("/matches")
	{
		matches.GET("", handler.List)
		matches.POST("", handler.Create)
		matches.GET("/calculate_matches", handler.Calculate)
		matches.GET("/:id", handler.Get)
		matches.DELETE("/:id", handler.Delete)
	}
}

type CreateMatchRequest struct {
	JobID       int64   `json:"job_id" binding:"required,gt=0"`
	CandidateID int64   `json:"candidate_id" binding:"required,gt=0"`
	Score       float64 `json:"score" binding:"gte=0,lte=100"`
}

// ListMatches godoc
// @Summary      List matches
// @Description  Employers see matches on their jobs, candidates their own
// @Tags         matches
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=response.ListData}
// @Router       /matches [get]
// @Security     BearerAuth
func (h *MatchHandler) List(c *gin.Context) {
	page := parsePage(c)
	matches, total, err := h.matchUC.ListMatches(c.Request.Context(), caller(c), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, http.StatusOK, "Matches retrieved", matches, total, page.Page, page.PageSize)
}

// GetMatch godoc
// @Summary      Get a match
// @Tags         matches
// @Produce      json
// @Param        id   path      int  true  "Match ID"
// @Success      200  {object}  response.Response{data=domain.Match}
// @Failure      404  {object}  response.Response
// @Router       /matches/{id} [get]
// @Security     BearerAuth
func (h *MatchHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	match, err := h.matchUC.GetMatch(c.Request.Context(), caller(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Match retrieved", match)
}

// Calculate godoc
// @Summary      Recompute algorithmic matches
// @Description  Employers score their jobs against every candidate, candidates score themselves against every active job
// @Tags         matches
// @Produce      json
// @Param        min_score  query     number  false  "Skip scores below this value"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Router       /matches/calculate_matches [get]
// @Security     BearerAuth
func (h *MatchHandler) Calculate(c *gin.Context) {
	minScore := 0.0
	if raw := c.Query("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.Error(apperror.Validation("Invalid input", apperror.FieldError{Field: "min_score", Message: "Must be a number"}))
			return
		}
		minScore = v
	}

	matches, err := h.matchUC.CalculateMatches(c.Request.Context(), caller(c), minScore)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Matches calculated", gin.H{"matches": matches, "count": len(matches)})
}

// CreateMatch godoc
// @Summary      Create a manual match
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        match  body      CreateMatchRequest  true  "Match"
// @Success      201    {object}  response.Response{data=domain.Match}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /matches [post]
// @Security     BearerAuth
func (h *MatchHandler) Create(c *gin.Context) {
	var req CreateMatchRequest
	if !bindJSON(c, &req) {
		return
	}
	match := &domain.Match{JobID: req.JobID, CandidateID: req.CandidateID, Score: req.Score}
	if err := h.matchUC.CreateManualMatch(c.Request.Context(), caller(c), match); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Match created", match)
}

// DeleteMatch godoc
// @Summary      Delete a match (job owner only)
// @Tags         matches
// @Param        id   path      int  true  "Match ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /matches/{id} [delete]
// @Security     BearerAuth
func (h *MatchHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.matchUC.DeleteMatch(c.Request.Context(), caller(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Match deleted", nil)
}
