package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that knows the exclusive tag and reports fields by their flag label.
func newValidator() (*validator.Validate, error) {
	validate := validator.New()

	if err := registerExclusive(validate); err != nil {
		return nil, err
	}

	validate.RegisterTagNameFunc(labelOf)

	return validate, nil
}

// registerExclusive adds a custom validator ensuring two fields are not both set.
func registerExclusive(validate *validator.Validate) error {
	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	return nil
}

// validateExclusive returns false if both the field and the named field hold non-zero values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	return field.IsZero() || otherField.IsZero()
}

func labelOf(fld reflect.StructField) string {
	const splitSize = 2

	name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
	if name == "" || name == "-" {
		return fld.Name
	}

	return name
}

// describe turns validation failures into a usage error naming the offending flags.
func describe(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validating configuration: %w", err)
	}

	messages := make([]string, 0, len(errs))

	for _, fe := range errs {
		switch fe.Tag() {
		case "exclusive":
			other := fe.Param()
			if fld, ok := reflect.TypeOf(Config{}).FieldByName(other); ok {
				other = labelOf(fld)
			}

			messages = append(messages, fmt.Sprintf("%s cannot be used with %s", fe.Field(), other))
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}

	return fmt.Errorf("%w: %s", ErrUsage, strings.Join(messages, "; "))
}
