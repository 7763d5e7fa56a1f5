package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"portal/internal/config"
	"portal/internal/domain"
)

// maxRequestBytes bounds request bodies: a page created by hand may carry as
// much content as an imported one, plus its JSON envelope.
const maxRequestBytes = config.MaxFetchedContentBytes + 64<<10

// ParseJSON decodes a single JSON value from the request body into dest.
// A malformed or empty body is a validation error; an oversized body keeps its
// *http.MaxBytesError so it maps to 413.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("request body exceeds %d bytes: %w", tooLarge.Limit, err)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		default:
			return fmt.Errorf("%w: invalid JSON: %v", domain.ErrValidation, err)
		}
	}
	if decoder.More() {
		return fmt.Errorf("%w: request body holds more than one JSON value", domain.ErrValidation)
	}
	return nil
}
