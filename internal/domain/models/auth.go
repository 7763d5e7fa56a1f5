package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the role claim value that grants management rights on every API.
const RoleAdmin = "admin"

// AccessClaims represents the JWT claims issued by the identity provider.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// IsAdmin reports whether the token carries the admin role
func (c *AccessClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
