package utils

import "github.com/google/uuid"

// NewRequestID returns a random identifier for the X-Request-ID header.
func NewRequestID() string {
	return uuid.NewString()
}
