package http

import (
	"fmt"

	"fate-server/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator подключает validator/v10 к echo.Context.Validate.
type requestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator создает валидатор для регистрации в e.Validator.
func NewRequestValidator() echo.Validator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return nil
}
