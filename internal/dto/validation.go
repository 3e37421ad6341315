package dto

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// courseIDPattern matches Testudo-style course IDs: a department code
// followed by a three-digit number and an optional suffix letter.
var courseIDPattern = regexp.MustCompile(`^[A-Za-z]{4}\d{3}[A-Za-z]?$`)

// RegisterValidations installs the custom binding validators. Call once
// at startup before serving requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("course_id", func(fl validator.FieldLevel) bool {
		return courseIDPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
}
