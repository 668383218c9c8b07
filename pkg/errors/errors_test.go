package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		appErr *AppError
		status int
	}{
		{"invalid interval", InvalidInterval("start must be before end"), http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("missing token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("not the owner"), http.StatusForbidden},
		{"not found", NotFoundWithID("Booking", "abc"), http.StatusNotFound},
		{"conflict", Conflict("slot taken"), http.StatusConflict},
		{"internal", Internal("store unreachable", errors.New("dial tcp")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.StatusCode(); got != tt.status {
				t.Errorf("StatusCode() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestAsAppError_PassesThrough(t *testing.T) {
	conflict := Conflict("slot taken")
	if AsAppError(conflict) != conflict {
		t.Error("AsAppError should return the same AppError instance")
	}
}

func TestAsAppError_WrapsUnexpected(t *testing.T) {
	appErr := AsAppError(errors.New("mongo: no reachable servers"))
	if appErr.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, appErr.Code)
	}
	if appErr.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", appErr.HTTPStatus)
	}
}
