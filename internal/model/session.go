package model

import "time"

// Session is an opaque proof of admin identity. Its validity is decided by
// the session service on every check; expiry is never computed client side.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminUser is an account allowed to sign in to the admin area.
type AdminUser struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// LoginRequest is the credential exchange payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
