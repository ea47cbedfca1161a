package errors

import (
	"errors"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeInvalidCredentials,
				Message: "invalid credentials",
			},
			want: "invalid credentials",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeNetwork,
				Message: "request failed",
				Cause:   errors.New("connection refused"),
			},
			want: "request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Network(cause, "request failed")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(Network(cause), cause) = false, want true")
	}
}

func TestInvalidCredentials(t *testing.T) {
	err := InvalidCredentials("invalid credentials")
	if err.Code != ErrCodeInvalidCredentials {
		t.Errorf("InvalidCredentials().Code = %v, want %v", err.Code, ErrCodeInvalidCredentials)
	}
	if !IsInvalidCredentials(err) {
		t.Error("IsInvalidCredentials() = false, want true")
	}
	if IsValidation(err) {
		t.Error("IsValidation() = true, want false")
	}
}

func TestValidationFields(t *testing.T) {
	fields := map[string]string{"email": "invalid email", "username": "too short"}
	err := ValidationFields("invalid request", fields)

	if !IsValidation(err) {
		t.Error("IsValidation() = false, want true")
	}
	got := GetFields(err)
	if got["email"] != "invalid email" || got["username"] != "too short" {
		t.Errorf("GetFields() = %v, want %v", got, fields)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("password", "at least 8 characters")
	if GetField(err) != "password" {
		t.Errorf("GetField() = %v, want password", GetField(err))
	}
}

func TestIsPredicates_WrappedCause(t *testing.T) {
	inner := InvalidToken("token expired")
	outer := Wrap(inner, ErrCodeInternal, "reset password")

	// errors.As walks the chain; the outermost code wins.
	if !IsInternal(outer) {
		t.Error("IsInternal(outer) = false, want true")
	}
	if GetCode(outer) != ErrCodeInternal {
		t.Errorf("GetCode(outer) = %v, want %v", GetCode(outer), ErrCodeInternal)
	}
}

func TestWrap_NilError(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "noop") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, ErrCodeInternal, "noop %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode(plain error) should be empty")
	}
	if GetFields(errors.New("plain")) != nil {
		t.Error("GetFields(plain error) should be nil")
	}
}
