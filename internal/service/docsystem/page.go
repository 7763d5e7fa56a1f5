package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"portal/internal/config"
	"portal/internal/domain"
	models "portal/internal/domain/models/docsystem"
	"portal/internal/domain/repositories"
	docsysRepo "portal/internal/domain/repositories/docsystem"
	"portal/internal/domain/services"
	docsysSvc "portal/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type pageService struct {
	pageRepo   docsysRepo.PageRepository
	txManager  repositories.TransactionManager
	indexer    docsysSvc.Indexer
	visibility services.PageVisibility
	logger     *slog.Logger
}

// NewPageService creates a new page service
func NewPageService(
	pageRepo docsysRepo.PageRepository,
	txManager repositories.TransactionManager,
	indexer docsysSvc.Indexer,
	visibility services.PageVisibility,
	logger *slog.Logger,
) docsysSvc.PageService {
	return &pageService{
		pageRepo:   pageRepo,
		txManager:  txManager,
		indexer:    indexer,
		visibility: visibility,
		logger:     logger,
	}
}

// CreatePage creates a page ordered after every existing page of the API.
// The max-order read and the insert share one transaction.
func (s *pageService) CreatePage(ctx context.Context, req *docsysSvc.CreatePageRequest) (*models.Page, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	page := &models.Page{
		APIID:           req.APIID,
		Name:            req.Name,
		Type:            req.Type,
		Content:         req.Content,
		ParentID:        req.ParentID,
		Published:       req.Published,
		LastContributor: req.Contributor,
		Source:          req.Source,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if page.IsFolder() {
		page.Content = ""
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if page.ParentID != nil {
			parent, err := s.pageRepo.GetByID(txCtx, *page.ParentID, req.APIID)
			if err != nil {
				return fmt.Errorf("parent page: %w", err)
			}
			if !parent.IsFolder() {
				return fmt.Errorf("%w: parent %s is not a folder", domain.ErrValidation, parent.ID)
			}
		}

		maxOrder, err := s.pageRepo.MaxOrder(txCtx, req.APIID)
		if err != nil {
			return fmt.Errorf("failed to compute page order: %w", err)
		}
		page.Order = maxOrder + 1

		return s.pageRepo.Create(txCtx, page)
	})
	if err != nil {
		return nil, err
	}

	if err := s.indexer.Index(ctx, page); err != nil {
		s.logger.Warn("failed to index page", "page_id", page.ID, "error", err)
	}

	s.logger.Info("page created",
		"id", page.ID,
		"api_id", page.APIID,
		"name", page.Name,
		"type", page.Type,
		"order", page.Order,
	)

	return page, nil
}

// GetPage retrieves a page. Pages the reader may not see are reported as not found.
func (s *pageService) GetPage(ctx context.Context, reader *docsysSvc.Reader, apiID, pageID string) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID, apiID)
	if err != nil {
		return nil, err
	}
	if !s.visibility.CanRead(ctx, reader, page) {
		return nil, fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
	}
	return page, nil
}

// ListPages lists the API's pages visible to the reader
func (s *pageService) ListPages(ctx context.Context, reader *docsysSvc.Reader, apiID string, filter *docsysRepo.PageFilter) ([]models.Page, error) {
	if filter != nil && filter.Type != nil && !filter.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown page type %q", domain.ErrValidation, *filter.Type)
	}

	pages, err := s.pageRepo.ListByAPI(ctx, apiID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	visible := make([]models.Page, 0, len(pages))
	for i := range pages {
		if s.visibility.CanRead(ctx, reader, &pages[i]) {
			visible = append(visible, pages[i])
		}
	}
	return visible, nil
}

// validateCreateRequest validates a page creation request
func (s *pageService) validateCreateRequest(req *docsysSvc.CreatePageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.APIID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxPageNameLength),
			validation.Match(regexp.MustCompile(`^[^/]+$`)).Error("page name cannot contain slashes"),
		),
		validation.Field(&req.Type,
			validation.Required,
			validation.In(models.PageTypeFolder, models.PageTypeMarkdown, models.PageTypeSwagger),
		),
	)
}
