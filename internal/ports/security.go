package ports

import "time"

// AuthClaims is what the platform's identity service signs into admin tokens.
// Token issuance lives outside this service; only verification happens here.
type AuthClaims struct {
	UserID    string
	OngID     string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenVerifier interface {
	ParseAndValidate(raw string) (AuthClaims, error)
}
