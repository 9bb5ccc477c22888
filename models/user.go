package models

import (
	"time"
	"unicode/utf8"
)

// MaxTextLength is the size of the VARCHAR username, client name, contact email and task title columns.
const MaxTextLength = 255

// TooLong reports whether s does not fit a MaxTextLength column.
func TooLong(s string) bool {
	return utf8.RuneCountInString(s) > MaxTextLength
}

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Identity is the authenticated caller, taken from a verified token.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// Credentials is the body of the register and login endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
