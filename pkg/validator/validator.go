// Package validator adapts go-playground/validator to Echo's Validator
// interface so request DTOs are checked by their struct tags at bind time.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a single validator.Validate instance; it is safe
// for concurrent use across handlers.
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	return &CustomValidator{v: v}
}

// Validate performs struct validation against the DTO's validate tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
