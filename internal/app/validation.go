package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"rewear/internal/models"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that knows the closed listing enumerations.
func newValidator() *validator.Validate {
	validate := validator.New()
	oneOf := func(values []string) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return slices.Contains(values, fl.Field().String())
		}
	}
	validate.RegisterValidation("item_category", oneOf(models.ItemCategories))
	validate.RegisterValidation("item_type", oneOf(models.ItemTypes))
	validate.RegisterValidation("item_size", oneOf(models.ItemSizes))
	validate.RegisterValidation("item_condition", oneOf(models.ItemConditions))
	return validate
}

// validateStruct runs the struct validation and reports the first failing fields as a bad request.
func (app *App) validateStruct(payload any) error {
	err := app.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return newError(ErrBadRequest, err.Error())
	}

	reasons := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		reasons = append(reasons, describeFieldError(fieldError))
	}
	return newError(ErrBadRequest, strings.Join(reasons, "; "))
}

func describeFieldError(fieldError validator.FieldError) string {
	field := fieldError.Field()
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldError.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
	case "item_category", "item_type", "item_size", "item_condition":
		return fmt.Sprintf("invalid %s", strings.ToLower(field))
	}
	return fmt.Sprintf("%s is invalid", field)
}
