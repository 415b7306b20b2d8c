package models

import "time"

// Session is the opaque proof of authentication for an admin user
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminUser is a row of the admin_usuarios table
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
}

// LoginRequest represents the request body for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
