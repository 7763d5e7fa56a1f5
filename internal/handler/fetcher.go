package handler

import (
	"net/http"

	"portal/internal/fetcher"
	"portal/internal/httputil"
)

// FetcherHandler lists the source types pages can be imported from
type FetcherHandler struct {
	catalog []fetcher.TypeInfo
}

// NewFetcherHandler creates a new fetcher handler
func NewFetcherHandler(catalog []fetcher.TypeInfo) *FetcherHandler {
	return &FetcherHandler{catalog: catalog}
}

// ListFetchers returns the fetcher catalog
// GET /api/fetchers
func (h *FetcherHandler) ListFetchers(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.catalog)
}

// HealthCheck reports the server is up
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
