package domain

import "time"

// Identity is the verified caller as seen by the rest of the service.
type Identity struct {
	Email string
	Role  Role
}

// IssuedToken carries a signed access token and its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}
