package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	principalKey contextKey = "principal"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID string
	Admin  bool
}

// WithPrincipal adds the authenticated caller to the request context
func WithPrincipal(r *http.Request, p *Principal) *http.Request {
	ctx := context.WithValue(r.Context(), principalKey, p)
	return r.WithContext(ctx)
}

// GetPrincipal retrieves the caller from context, nil for anonymous requests
func GetPrincipal(r *http.Request) *Principal {
	p, _ := r.Context().Value(principalKey).(*Principal)
	return p
}
