package utils

import (
	"CulinaShare-Backend/domain"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	Validate     *validator.Validate
	validateOnce sync.Once
)

// InitValidator builds the shared validator with the recipe enum tags
// registered. Calling it more than once is harmless.
func InitValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			return slices.Contains(domain.DifficultyLevels, fl.Field().String())
		})
		_ = v.RegisterValidation("dietary_tag", func(fl validator.FieldLevel) bool {
			return slices.Contains(domain.DietaryTags, fl.Field().String())
		})
		Validate = v
	})
	return Validate
}

// ValidateStruct runs the shared validator and wraps failures in
// domain.ErrValidation.
func ValidateStruct(s interface{}) error {
	if err := InitValidator().Struct(s); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
