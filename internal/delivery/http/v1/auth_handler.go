package v1

import (
	"net/http"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers auth routes. limit guards the unauthenticated endpoints.
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, limit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	publicAuth.Use(limit)
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
	}

	protected.GET("/auth/me", handler.Me)
}

type RegisterRequest struct {
	Username          string `json:"username" binding:"required,max=150,no_emoji"`
	Email             string `json:"email" binding:"omitempty,email"`
	Password          string `json:"password" binding:"required,min=8,max=128"`
	FirstName         string `json:"first_name" binding:"max=150"`
	LastName          string `json:"last_name" binding:"max=150"`
	IsEmployer        bool   `json:"is_employer"`
	RoleType          string `json:"role_type" binding:"role_type"`
	Bio               string `json:"bio"`
	Age               *int   `json:"age" binding:"omitempty,gte=0,lte=150"`
	Location          string `json:"location" binding:"max=255"`
	CurrentTitle      string `json:"current_title" binding:"max=255"`
	YearsOfExperience int    `json:"years_of_experience" binding:"gte=0"`
	ImageURL          string `json:"image_url" binding:"omitempty,url"`
	LinkedInURL       string `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL         string `json:"github_url" binding:"omitempty,url"`
	PortfolioURL      string `json:"portfolio_url" binding:"omitempty,url"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary      Register an account
// @Description  Creates the account and its profile, returning an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration details"
// @Success      201       {object}  response.Response{data=domain.AuthResult}
// @Failure      400       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Failure      429       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		IsEmployer:        req.IsEmployer,
		RoleType:          domain.RoleType(req.RoleType),
		Bio:               req.Bio,
		Age:               req.Age,
		Location:          req.Location,
		CurrentTitle:      req.CurrentTitle,
		YearsOfExperience: req.YearsOfExperience,
		ImageURL:          req.ImageURL,
		LinkedInURL:       req.LinkedInURL,
		GithubURL:         req.GithubURL,
		PortfolioURL:      req.PortfolioURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", result)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.AuthResult}
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, profile, err := h.authUC.Me(c.Request.Context(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current user", gin.H{"user": user, "profile": profile})
}
