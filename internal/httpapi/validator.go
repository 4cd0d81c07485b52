package httpapi

import (
	"github.com/go-playground/validator/v10"
	"interview-insights-go/internal/types"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// NewValidator registers the analysis enum tags: domain, round_type and
// feedback_tone. Empty values pass; they resolve to defaults.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("domain", enumValidator(types.Domains))
	_ = v.RegisterValidation("round_type", enumValidator(types.RoundTypes))
	_ = v.RegisterValidation("feedback_tone", enumValidator(types.FeedbackTones))
	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

func enumValidator[T ~string](values []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		for _, v := range values {
			if string(v) == s {
				return true
			}
		}
		return false
	}
}
