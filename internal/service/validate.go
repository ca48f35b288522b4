package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"katalog/internal/model"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateFields checks field constraints and converts failures into a
// ValidationError naming the first offending field.
func validateFields(v *validator.Validate, fields model.ProductFields) error {
	err := v.Struct(fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return model.NewValidationError(err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return model.NewValidationError(fmt.Sprintf("%s is required", fe.Field()))
	case "gte":
		return model.NewValidationError(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
	default:
		return model.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
