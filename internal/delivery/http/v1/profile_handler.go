package v1

import (
	"net/http"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profiles := protected.Group("/profiles")
	{
		profiles.GET("", handler.List)
		profiles.GET("/:id", handler.Get)
		profiles.PUT("/:id", handler.Update)
	}
}

type PreviousTitleRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Company  string `json:"company" binding:"required,max=255"`
	Duration string `json:"duration" binding:"max=100"`
}

// UpdateProfileRequest replaces the profile. skill_ids and previous_titles replace the
// current sets wholesale.
type UpdateProfileRequest struct {
	IsEmployer        bool                   `json:"is_employer"`
	RoleType          string                 `json:"role_type" binding:"role_type"`
	Bio               string                 `json:"bio"`
	ImageURL          string                 `json:"image_url" binding:"omitempty,url"`
	Age               *int                   `json:"age" binding:"omitempty,gte=0,lte=150"`
	Location          string                 `json:"location" binding:"max=255"`
	CurrentTitle      string                 `json:"current_title" binding:"max=255"`
	YearsOfExperience int                    `json:"years_of_experience" binding:"gte=0"`
	ResumeURL         string                 `json:"resume_url" binding:"omitempty,url"`
	LinkedInURL       string                 `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL         string                 `json:"github_url" binding:"omitempty,url"`
	PortfolioURL      string                 `json:"portfolio_url" binding:"omitempty,url"`
	TwitterURL        string                 `json:"twitter_url" binding:"omitempty,url"`
	PersonalWebsite   string                 `json:"personal_website" binding:"omitempty,url"`
	SkillIDs          []int64                `json:"skill_ids" binding:"dive,gt=0"`
	PreviousTitles    []PreviousTitleRequest `json:"previous_titles" binding:"dive"`
}

func (r UpdateProfileRequest) toDomain(id int64) *domain.UserProfile {
	titles := make([]domain.PreviousTitle, 0, len(r.PreviousTitles))
	for _, t := range r.PreviousTitles {
		titles = append(titles, domain.PreviousTitle{Title: t.Title, Company: t.Company, Duration: t.Duration})
	}
	return &domain.UserProfile{
		ID:                id,
		IsEmployer:        r.IsEmployer,
		RoleType:          domain.RoleType(r.RoleType),
		Bio:               r.Bio,
		ImageURL:          r.ImageURL,
		Age:               r.Age,
		Location:          r.Location,
		CurrentTitle:      r.CurrentTitle,
		YearsOfExperience: r.YearsOfExperience,
		ResumeURL:         r.ResumeURL,
		LinkedInURL:       r.LinkedInURL,
		GithubURL:         r.GithubURL,
		PortfolioURL:      r.PortfolioURL,
		TwitterURL:        r.TwitterURL,
		PersonalWebsite:   r.PersonalWebsite,
		Skills:            skillRefs(r.SkillIDs),
		PreviousTitles:    titles,
	}
}

// ListProfiles godoc
// @Summary      List profiles
// @Description  Staff see every profile, everyone else only their own
// @Tags         profiles
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=response.ListData}
// @Router       /profiles [get]
// @Security     BearerAuth
func (h *ProfileHandler) List(c *gin.Context) {
	page := parsePage(c)
	profiles, total, err := h.profileUC.ListProfiles(c.Request.Context(), caller(c), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, http.StatusOK, "Profiles retrieved", profiles, total, page.Page, page.PageSize)
}

// GetProfile godoc
// @Summary      Get a profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.Response{data=domain.UserProfile}
// @Failure      404  {object}  response.Response
// @Router       /profiles/{id} [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	profile, err := h.profileUC.GetProfile(c.Request.Context(), caller(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Profile ID"
// @Param        profile  body      UpdateProfileRequest  true  "Profile"
// @Success      200      {object}  response.Response{data=domain.UserProfile}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /profiles/{id} [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), caller(c), req.toDomain(id))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profile)
}
