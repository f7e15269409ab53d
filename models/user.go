package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID           int             `json:"id" db:"id"`
	Email        string          `json:"email" db:"email"`
	Username     string          `json:"username" db:"username"`
	PasswordHash string          `json:"-" db:"password_hash"`
	IsActive     bool            `json:"is_active" db:"is_active"`
	IsSuperuser  bool            `json:"is_superuser" db:"is_superuser"`
	Preferences  json.RawMessage `json:"preferences,omitempty" db:"preferences"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	LastLogin    *time.Time      `json:"last_login,omitempty" db:"last_login"`
}

// TokenPair is the response body of /auth/token and /auth/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}
