package validator

import (
	"strings"

	"brushwork_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Custom rules used by the DTOs.
func registerCustomRules(v *validator.Validate) {
	// "orderstatus": the string is one of the known order lifecycle states.
	_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return models.OrderStatus(fl.Field().String()).Valid()
	})

	// "notblank": non-empty after trimming whitespace. "required" alone lets
	// an all-spaces comment through.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
