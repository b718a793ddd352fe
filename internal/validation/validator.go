// Package validation checks incoming DTOs with go-playground/validator and
// turns failures into VALIDATION_ERROR responses with readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"datablog/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		instance = v
	})
	return instance
}

// Struct validates s and returns a models.AppError with one message per failed field.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.NewValidationError(err.Error())
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	messages := make([]string, 0, len(fieldErrs))
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := message(t, fe)
		if seen[msg] {
			continue
		}
		seen[msg] = true
		messages = append(messages, msg)
	}
	return models.NewValidationErrors(messages)
}

func message(t reflect.Type, fe validator.FieldError) string {
	field, _ := t.FieldByName(fe.StructField())
	label := field.Tag.Get("label")
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s is required", label)
	case "email":
		return fmt.Sprintf("The %s must be valid", label)
	case "min", "max":
		lo, hi := bounds(field.Tag.Get("validate"))
		return fmt.Sprintf("The %s must be between %s and %s characters", label, lo, hi)
	default:
		return fmt.Sprintf("The %s is invalid", label)
	}
}

// bounds extracts the min and max params from a validate tag.
func bounds(tag string) (lo, hi string) {
	lo, hi = "0", "unbounded"
	for _, rule := range strings.Split(tag, ",") {
		name, param, ok := strings.Cut(rule, "=")
		if !ok {
			continue
		}
		switch name {
		case "min":
			lo = param
		case "max":
			hi = param
		}
	}
	return lo, hi
}
