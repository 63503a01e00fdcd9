package validation

import (
	"reflect"
	"strings"
	"unicode"

	"matchmakr-backend/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("employment_type", enumValidator(func(s string) bool {
		return domain.EmploymentType(s).Valid()
	}))
	_ = v.RegisterValidation("experience_level", enumValidator(func(s string) bool {
		return domain.ExperienceLevel(s).Valid()
	}))
	_ = v.RegisterValidation("role_type", enumValidator(func(s string) bool {
		return domain.RoleType(s).Valid()
	}))
	_ = v.RegisterValidation("application_status", enumValidator(func(s string) bool {
		return domain.ApplicationStatus(s).Valid()
	}))
	_ = v.RegisterValidation("match_type", enumValidator(func(s string) bool {
		return domain.MatchType(s).Valid()
	}))
}

// RegisterGinValidators installs the custom validators on gin's binding engine
func RegisterGinValidators() bool {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return false
	}
	RegisterValidators(v)
	return true
}

// jsonTagName reports fields by their JSON name
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// enumValidator accepts the empty string so optional fields can omit the value
func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		return valid(val)
	}
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
