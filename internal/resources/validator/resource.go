package validator

import (
	"errors"
	"fmt"
	"strings"

	"resbook/pkg/logger"
	"resbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ResourceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewResourceValidator(log *logger.Logger) *ResourceValidator {
	return &ResourceValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *ResourceValidator) ValidateCreate(resource *model.Resource) error {
	return v.translate(v.validate.Struct(resource))
}

func (v *ResourceValidator) ValidateUpdate(updates *model.ResourceUpdate) error {
	if updates.Name == nil && updates.Description == nil {
		return ValidationErrors{{Field: "body", Message: "at least one field must be provided"}}
	}
	return v.translate(v.validate.Struct(updates))
}

func (v *ResourceValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
		})
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation on '%s'", fe.Tag())
	}
}
