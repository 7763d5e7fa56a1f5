package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrFetch        = errors.New("fetch failed")
	ErrPersistence  = errors.New("persistence failed")
)

// FetchError reports that a source listing or content retrieval failed.
// Path is empty when the listing itself failed.
type FetchError struct {
	SourceType string
	Path       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("fetch listing from %s source: %v", e.SourceType, e.Err)
	}
	return fmt.Sprintf("fetch %q from %s source: %v", e.Path, e.SourceType, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StatusCode implements the HTTPError interface
func (e *FetchError) StatusCode() int { return http.StatusBadGateway }

// Is allows errors.Is() to match against ErrFetch
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// PersistenceError reports that creating a page for Path failed.
// Pages created before the failure stay persisted.
type PersistenceError struct {
	Path string
	Kind string // "folder" or "page"
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("create %s for %q: %v", e.Kind, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// StatusCode implements the HTTPError interface
func (e *PersistenceError) StatusCode() int { return http.StatusInternalServerError }

// Is allows errors.Is() to match against ErrPersistence
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
