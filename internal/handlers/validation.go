package handlers

import (
	"errors"
	"reflect"
	"strings"

	"catalog/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// fieldMessages holds the message reported for each field and failed tag.
var fieldMessages = map[string]map[string]string{
	"name": {
		"notblank": "the name must not be null or blank",
	},
	"description": {
		"notblank": "the description must not be null or blank",
	},
	"price": {
		"required":    "the price must not be null",
		"decimal_gte": "the price must not be less than $0",
	},
	"quantity": {
		"required": "the quantity must not be null",
		"min":      "the quantity must not be less than 1",
	},
}

// newValidator builds a validator that reports fields by their JSON names and understands
// decimal prices and blank strings.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on empty tags or nil functions.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("decimal_gte", decimalGTE)
	return v
}

// decimalGTE checks that a decimal field is greater than or equal to the tag parameter.
func decimalGTE(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(bound)
}

// validateStruct runs v against s and converts failures into an errs.ValidationError.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(errs.ValidationError, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fieldMessage(e.Field(), e.Tag())
	}
	return fields
}

func fieldMessage(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return "the " + field + " is invalid"
}
