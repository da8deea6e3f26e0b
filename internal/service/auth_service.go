package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roguepikachu/canopy/internal/apperror"
	"github.com/roguepikachu/canopy/internal/auth"
	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/repository"
	"github.com/roguepikachu/canopy/internal/validation"
)

// AuthService handles registration, password login, and Google sign-in.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	google    auth.GoogleExchanger
	clock     Clock
}

// NewAuthService creates an AuthService. google may be nil when Google
// sign-in is not configured.
func NewAuthService(users repository.UserRepository, passwords *auth.PasswordService, tokens *auth.TokenService, google auth.GoogleExchanger, clock Clock) *AuthService {
	return &AuthService{users: users, passwords: passwords, tokens: tokens, google: google, clock: clock}
}

// Register validates and creates an account, returning the stored user and a
// signed access token.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, string, error) {
	if err := validation.ValidateRegister(&req); err != nil {
		return domain.User{}, "", err
	}
	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	stored, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, "", apperror.ValidationFailed("username", "Username or email already taken")
		}
		return domain.User{}, "", fmt.Errorf("insert user: %w", err)
	}
	token, err := s.tokens.Generate(stored.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return stored, token, nil
}

// Login verifies email+password credentials and issues an access token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.User, string, error) {
	if err := validation.ValidateLogin(&req); err != nil {
		return domain.User{}, "", err
	}
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, "", apperror.Forbidden("Invalid email or password")
		}
		return domain.User{}, "", fmt.Errorf("find user: %w", err)
	}
	// Google-auth accounts have no password hash and cannot password-login.
	if user.PasswordHash == "" {
		return domain.User{}, "", apperror.Forbidden("Invalid email or password")
	}
	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.User{}, "", apperror.Forbidden("Invalid email or password")
		}
		return domain.User{}, "", fmt.Errorf("verify password: %w", err)
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// GoogleLogin exchanges the OAuth callback code for the user's identity and
// upserts the account, then issues an access token.
func (s *AuthService) GoogleLogin(ctx context.Context, req domain.GoogleCallbackRequest) (domain.User, string, error) {
	if err := validation.ValidateGoogleCallback(&req); err != nil {
		return domain.User{}, "", err
	}
	if s.google == nil {
		return domain.User{}, "", errors.New("google sign-in not configured")
	}
	gu, err := s.google.Exchange(ctx, req.Code)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("google exchange: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, gu.Email)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.users.Insert(ctx, domain.User{
			Name:       gu.Name,
			Username:   usernameFromEmail(gu.Email),
			Email:      gu.Email,
			GoogleAuth: true,
			CreatedAt:  s.clock.Now(),
		})
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("upsert google user: %w", err)
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
