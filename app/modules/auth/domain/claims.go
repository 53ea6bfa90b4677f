package authdomain

import "time"

// Claims represents the domain model for a verified bearer token.
type Claims struct {
	Subject   string
	Role      Role
	Issuer    string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// IsAdmin reports whether the token grants access to the admin surface.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
