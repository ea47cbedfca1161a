package gateway

// Pre-flight input validation. The backend is the single source of truth;
// these checks only reject obviously-wasted round trips with the same
// thresholds the SUPRSS web client enforces.

import (
	"regexp"

	apperrors "github.com/BRENHINES/SUPRSS/internal/errors"
	"github.com/BRENHINES/SUPRSS/internal/ports"
)

const (
	minIdentifierLen = 2
	minUsernameLen   = 3
	maxUsernameLen   = 32
	minPasswordLen   = 8
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateLogin(identifier, password string) error {
	if len(identifier) < minIdentifierLen {
		return apperrors.ValidationField("identifier", "email or username is required")
	}
	if password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	return nil
}

func validateRegister(in ports.RegisterInput) error {
	fields := make(map[string]string)
	if !emailPattern.MatchString(in.Email) {
		fields["email"] = "invalid email"
	}
	if len(in.Username) < minUsernameLen {
		fields["username"] = "at least 3 characters"
	} else if len(in.Username) > maxUsernameLen {
		fields["username"] = "at most 32 characters"
	}
	if len(in.Password) < minPasswordLen {
		fields["password"] = "at least 8 characters"
	}
	if len(fields) > 0 {
		return apperrors.ValidationFields("invalid registration data", fields)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.ValidationField("email", "invalid email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return apperrors.ValidationField("password", "at least 8 characters")
	}
	return nil
}
