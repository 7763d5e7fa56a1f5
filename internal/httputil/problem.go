package httputil

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"portal/internal/domain"
)

// Problem types of portal error responses (RFC 7807 "type" member)
const (
	ProblemValidation   = "urn:portal:problem:validation"
	ProblemTooLarge     = "urn:portal:problem:request-too-large"
	ProblemUnauthorized = "urn:portal:problem:unauthorized"
	ProblemForbidden    = "urn:portal:problem:forbidden"
	ProblemNotFound     = "urn:portal:problem:not-found"
	ProblemFetch        = "urn:portal:problem:fetch-failed"
	ProblemPersistence  = "urn:portal:problem:persistence-failed"
	ProblemInternal     = "urn:portal:problem:internal"
)

// ProblemDetail is an RFC 7807 body. Extra members are written at top level.
type ProblemDetail struct {
	Type   string
	Title  string
	Status int
	Detail string
	Extra  map[string]any
}

// NewProblem builds a problem whose type follows from status
func NewProblem(status int, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   problemTypeForStatus(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// With sets an extension member; empty values are left out
func (p *ProblemDetail) With(key, value string) *ProblemDetail {
	if value == "" {
		return p
	}
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[key] = value
	return p
}

func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+4)
	maps.Copy(m, p.Extra)
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	return json.Marshal(m)
}

// ProblemFromError maps a service error to its problem.
// Errors outside the domain taxonomy become an opaque 500.
func ProblemFromError(err error) *ProblemDetail {
	var fetchErr *domain.FetchError
	var persistErr *domain.PersistenceError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &fetchErr):
		return NewProblem(fetchErr.StatusCode(), fetchErr.Error()).
			With("source_type", fetchErr.SourceType).
			With("path", fetchErr.Path)
	case errors.As(err, &persistErr):
		// the cause may carry SQL; only the failing entry is reported
		p := NewProblem(persistErr.StatusCode(), "failed to store imported pages").
			With("path", persistErr.Path).
			With("kind", persistErr.Kind)
		p.Type = ProblemPersistence
		return p
	case errors.As(err, &tooLarge):
		return NewProblem(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return NewProblem(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return NewProblem(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return NewProblem(http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return NewProblem(http.StatusForbidden, err.Error())
	default:
		return NewProblem(http.StatusInternalServerError, "internal server error")
	}
}

func problemTypeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ProblemValidation
	case http.StatusRequestEntityTooLarge:
		return ProblemTooLarge
	case http.StatusUnauthorized:
		return ProblemUnauthorized
	case http.StatusForbidden:
		return ProblemForbidden
	case http.StatusNotFound:
		return ProblemNotFound
	case http.StatusBadGateway:
		return ProblemFetch
	case http.StatusInternalServerError:
		return ProblemInternal
	default:
		return "about:blank"
	}
}
