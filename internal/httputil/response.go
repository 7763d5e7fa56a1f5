package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes data as JSON. Encoding happens before any header is
// written, so a value that cannot be encoded still yields a clean 500 problem.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, "application/json", payload)
}

// RespondError writes a problem for status with a free-form detail
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondProblem(w, NewProblem(status, detail))
}

// RespondDomainError writes the problem ProblemFromError maps err to
func RespondDomainError(w http.ResponseWriter, err error) {
	RespondProblem(w, ProblemFromError(err))
}

// RespondProblem writes p as application/problem+json
func RespondProblem(w http.ResponseWriter, p *ProblemDetail) {
	payload, err := json.Marshal(p)
	if err != nil {
		write(w, http.StatusInternalServerError, "text/plain", []byte("internal server error"))
		return
	}
	write(w, p.Status, "application/problem+json", payload)
}

func write(w http.ResponseWriter, status int, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
