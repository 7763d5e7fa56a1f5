package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	models "portal/internal/domain/models/docsystem"
	docsysRepo "portal/internal/domain/repositories/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"
	"portal/internal/httputil"
)

// PageHandler handles the page HTTP routes of an API
type PageHandler struct {
	pageService   docsysSvc.PageService
	importService docsysSvc.ImportService
	logger        *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageService docsysSvc.PageService, importService docsysSvc.ImportService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		pageService:   pageService,
		importService: importService,
		logger:        logger,
	}
}

// ImportPages imports a directory tree from a source
// POST /api/apis/{api}/pages/_import
//
// Body: {"source": {"type": "github", "configuration": {...}}}
// Returns 201 with the import result. Admin only.
func (h *PageHandler) ImportPages(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req docsysSvc.ImportRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, err)
		return
	}
	req.APIID = r.PathValue("api")
	req.Contributor = caller.UserID

	result, err := h.importService.ImportDirectory(r.Context(), &req)
	if err != nil {
		h.logger.Warn("import failed", "api_id", req.APIID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// CreatePage creates a single page
// POST /api/apis/{api}/pages
// Admin only.
func (h *PageHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req docsysSvc.CreatePageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, err)
		return
	}
	req.APIID = r.PathValue("api")
	req.Contributor = caller.UserID

	page, err := h.pageService.CreatePage(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, page)
}

// ListPages lists the pages of an API visible to the caller
// GET /api/apis/{api}/pages
//
// Query parameters:
//   - type: optional, FOLDER | MARKDOWN | SWAGGER
//   - parent: optional, folder id; "root" selects root-level pages
//   - published: optional, true | false
//   - name: optional, exact page name
func (h *PageHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePageFilter(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	pages, err := h.pageService.ListPages(r.Context(), readerFrom(r), r.PathValue("api"), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pages)
}

// GetPage retrieves a page
// GET /api/apis/{api}/pages/{id}
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Page ID is required")
		return
	}

	page, err := h.pageService.GetPage(r.Context(), readerFrom(r), r.PathValue("api"), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

func parsePageFilter(r *http.Request) (*docsysRepo.PageFilter, error) {
	q := r.URL.Query()
	filter := &docsysRepo.PageFilter{}

	if v := q.Get("type"); v != "" {
		t := models.PageType(v)
		filter.Type = &t
	}
	if v := q.Get("parent"); v != "" {
		parent := v
		if v == "root" {
			parent = ""
		}
		filter.ParentID = &parent
	}
	if v := q.Get("published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("published must be true or false, got %q", v)
		}
		filter.Published = &published
	}
	if q.Has("name") {
		name := q.Get("name")
		if name == "" {
			return nil, fmt.Errorf("name must not be empty")
		}
		filter.Name = &name
	}
	return filter, nil
}
