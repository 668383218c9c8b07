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

type AuthValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAuthValidator(log *logger.Logger) *AuthValidator {
	return &AuthValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *AuthValidator) ValidateRegister(req *model.RegisterRequest) error {
	return v.translate(v.validate.Struct(req))
}

func (v *AuthValidator) ValidateLogin(req *model.LoginRequest) error {
	return v.translate(v.validate.Struct(req))
}

func (v *AuthValidator) translate(err error) error {
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
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation on '%s'", fe.Tag())
	}
}
