package v1

import (
	"strconv"

	"matchmakr-backend/internal/delivery/http/middleware"
	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

func parsePage(c *gin.Context) domain.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(domain.DefaultPageSize)))
	return domain.NewPage(page, size)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.NotFound("Not found"))
		return 0, false
	}
	return id, true
}

// bindJSON binds the body into req, reporting binding failures field by field
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(apperror.Validation("Invalid input", validation.FormatValidationErrors(err)...))
		return false
	}
	return true
}

func caller(c *gin.Context) domain.Caller {
	return middleware.CallerFrom(c)
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.Validation("Invalid filter", apperror.FieldError{Field: key, Message: "Must be a boolean"})
	}
	return &v, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.Validation("Invalid filter", apperror.FieldError{Field: key, Message: "Must be an integer"})
	}
	return &v, nil
}

func skillRefs(ids []int64) []domain.Skill {
	skills := make([]domain.Skill, 0, len(ids))
	for _, id := range ids {
		skills = append(skills, domain.Skill{ID: id})
	}
	return skills
}
