package domain

import "time"

// User represents a registered account. PasswordHash is empty for accounts
// created through Google sign-in.
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	GoogleAuth   bool       `json:"-"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    *time.Time `json:"-"`
}

// RegisterRequest is the expected request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the expected request body for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleCallbackRequest carries the authorization code from the OAuth redirect.
type GoogleCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserView is the serialized form of a user returned by auth endpoints.
type UserView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserView projects a User into its response shape.
func NewUserView(u User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}
