package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	app_errors "genesis-ai/backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// bodyValidator checks request DTOs. Field errors are reported by the JSON
// name the frontend sent, e.g. "prompt is required".
var bodyValidator = newBodyValidator()

func newBodyValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// describeField turns one failed rule into a sentence about the body field.
func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// validateRequest wraps app_errors.ErrValidation with every failed field of
// dto, in declaration order.
func validateRequest(dto any) error {
	err := bodyValidator.Struct(dto)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", app_errors.ErrValidation, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeField(fe))
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(problems, ", "))
}

// requireConversation checks the conversation id header shared by the chat endpoints.
func requireConversation(header string) error {
	if strings.TrimSpace(header) == "" {
		return fmt.Errorf("%w: missing %s header", app_errors.ErrValidation, conversationHeader)
	}
	return nil
}
