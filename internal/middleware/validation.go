package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/demir/classhub/internal/pkg/joincode"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Called once during startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// joincode accepts a 6 character class code in any letter case
	return v.RegisterValidation("joincode", func(fl validator.FieldLevel) bool {
		return joincode.IsValid(joincode.Normalize(fl.Field().String()))
	})
}
