package handlers

import (
	"bankledger/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts the shared validation rule set to echo.Validator.
// Validation errors pass through untouched so the central error handler can
// format them field by field.
type CustomValidator struct {
	rules *validator.Validate
}

// NewValidator creates the echo validator backed by the shared rule set
func NewValidator() echo.Validator {
	return &CustomValidator{rules: validation.GetValidator().GetValidate()}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.rules.Struct(i)
}
