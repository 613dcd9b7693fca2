package models

import (
	"time"
)

// User is an account identity. The password is only ever stored hashed, and
// the bearer token lives directly on the row: one token per user, a new
// issue overwrites the old one.
type User struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Username        string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email           string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Token           *string    `gorm:"size:64;uniqueIndex" json:"-"`
	TokenExpiration *time.Time `json:"-"`
}

// Authenticatable is implemented by identities that carry a password hash.
type Authenticatable interface {
	GetPasswordHash() string
}

// TokenHolder is implemented by identities that carry a bearer token.
type TokenHolder interface {
	CurrentToken() (token string, expiration time.Time, ok bool)
}

func (u *User) GetPasswordHash() string {
	return u.PasswordHash
}

// CurrentToken returns the user's token and expiry, ok is false when no
// token has been issued.
func (u *User) CurrentToken() (string, time.Time, bool) {
	if u.Token == nil || u.TokenExpiration == nil {
		return "", time.Time{}, false
	}
	return *u.Token, *u.TokenExpiration, true
}

// ToDict renders the user for API responses. The password hash is never
// included; token and expiry only appear when the record belongs to the
// requesting user.
func (u *User) ToDict(includeToken bool) map[string]interface{} {
	dict := map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
	if includeToken && u.Token != nil {
		dict["token"] = *u.Token
		dict["tokenExpiration"] = u.TokenExpiration
	}
	return dict
}
