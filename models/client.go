package models

import "time"

// Client belongs to exactly one user.
type Client struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	ContactEmail *string   `json:"contact_email" db:"contact_email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ClientInput is the create payload. The web frontend sends "email",
// "contact_email" is accepted as well.
type ClientInput struct {
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	ContactEmail *string `json:"contact_email"`
}

// ContactEmailValue returns the supplied email, preferring "email".
func (in ClientInput) ContactEmailValue() *string {
	if in.Email != nil {
		return in.Email
	}
	return in.ContactEmail
}

// ClientUpdate holds the fields of a merge update; nil means keep the stored value.
type ClientUpdate struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email"`
	Email        *string `json:"email"`
}

// ContactEmailValue returns the supplied email, preferring "contact_email".
func (in ClientUpdate) ContactEmailValue() *string {
	if in.ContactEmail != nil {
		return in.ContactEmail
	}
	return in.Email
}
