package validation

import (
	"strings"
	"unicode"

	"github.com/roguepikachu/canopy/internal/apperror"
	"github.com/roguepikachu/canopy/internal/domain"
)

const minPasswordLength = 6

func validatePassword(password string) error {
	password = strings.TrimSpace(password)
	if strings.ContainsFunc(password, unicode.IsSpace) {
		return apperror.ValidationFailed("password", "Password cannot contain spaces")
	}
	if len(password) < minPasswordLength {
		return apperror.ValidationFailed("password", "Password must be at least 6 characters")
	}
	return nil
}

// ValidateRegister normalizes and checks an account creation request in place.
func ValidateRegister(req *domain.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperror.ValidationFailed("name", "Name cannot be blank")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return apperror.ValidationFailed("username", "Username cannot be blank")
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}
	req.Password = strings.TrimSpace(req.Password)
	return nil
}

// ValidateLogin checks a password login request.
func ValidateLogin(req *domain.LoginRequest) error {
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	req.Password = strings.TrimSpace(req.Password)
	return nil
}

// ValidateGoogleCallback checks the OAuth authorization code.
func ValidateGoogleCallback(req *domain.GoogleCallbackRequest) error {
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		return apperror.ValidationFailed("code", "Code cannot be blank")
	}
	return nil
}
