package auth

import "time"

// User is a domain entity representing a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TokenPayload is the identity carried by a signed token.
type TokenPayload struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}
