package handler

import (
	"net/http"

	"portal/internal/domain"
	docsysSvc "portal/internal/domain/services/docsystem"
	"portal/internal/httputil"
)

// handleError writes the problem response for a service error
func handleError(w http.ResponseWriter, err error) {
	httputil.RespondDomainError(w, err)
}

// requireAdmin returns the caller when it is an administrator, and writes 401/403 otherwise
func requireAdmin(w http.ResponseWriter, r *http.Request) (*httputil.Principal, bool) {
	p := httputil.GetPrincipal(r)
	if p == nil {
		handleError(w, domain.ErrUnauthorized)
		return nil, false
	}
	if !p.Admin {
		handleError(w, domain.ErrForbidden)
		return nil, false
	}
	return p, true
}

// readerFrom maps the request caller to a page reader, nil when anonymous
func readerFrom(r *http.Request) *docsysSvc.Reader {
	p := httputil.GetPrincipal(r)
	if p == nil {
		return nil
	}
	return &docsysSvc.Reader{UserID: p.UserID, Admin: p.Admin}
}
