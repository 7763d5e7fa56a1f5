package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"portal/internal/config"
	"portal/internal/domain"
	models "portal/internal/domain/models/docsystem"
	docsysRepo "portal/internal/domain/repositories/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// importService implements the ImportService interface
type importService struct {
	pageRepo     docsysRepo.PageRepository
	fetchers     docsysSvc.FetcherResolver
	indexer      docsysSvc.Indexer
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewImportService creates a new import service.
// A zero fetchTimeout leaves the run bounded only by the caller's context.
func NewImportService(
	pageRepo docsysRepo.PageRepository,
	fetchers docsysSvc.FetcherResolver,
	indexer docsysSvc.Indexer,
	fetchTimeout time.Duration,
	logger *slog.Logger,
) docsysSvc.ImportService {
	return &importService{
		pageRepo:     pageRepo,
		fetchers:     fetchers,
		indexer:      indexer,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// importRun holds the state of one ImportDirectory call. Nothing in it outlives the call.
type importRun struct {
	id      string
	req     *docsysSvc.ImportRequest
	fetcher docsysSvc.Fetcher
	plan    *FolderPlan
	order   int
	result  *docsysSvc.ImportResult
	logger  *slog.Logger
}

func (r *importRun) nextOrder() int {
	r.order++
	return r.order
}

// ImportDirectory runs the import pipeline:
// listing → classification → folder plan → folders (parents first) → leaf pages.
// Each created page is indexed right after it is persisted.
func (s *importService) ImportDirectory(ctx context.Context, req *docsysSvc.ImportRequest) (*docsysSvc.ImportResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fetcher, err := s.fetchers.Resolve(req.Source)
	if err != nil {
		return nil, err
	}

	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	run := &importRun{
		id:      uuid.NewString(),
		req:     req,
		fetcher: fetcher,
		plan:    NewFolderPlan(),
		result: &docsysSvc.ImportResult{
			Folders: []models.Page{},
			Pages:   []models.Page{},
			Skipped: []docsysSvc.SkippedPath{},
		},
	}
	run.result.RunID = run.id
	run.logger = s.logger.With("run_id", run.id, "api_id", req.APIID, "source_type", req.Source.Type)

	files, err := fetcher.Files(ctx)
	if err != nil {
		return nil, &domain.FetchError{SourceType: req.Source.Type, Err: err}
	}
	if len(files) > config.MaxImportFiles {
		return nil, fmt.Errorf("%w: source lists %d files, limit is %d", domain.ErrValidation, len(files), config.MaxImportFiles)
	}

	run.logger.Info("import started", "file_count", len(files))

	classified := s.classify(run, files)

	if err := s.createFolders(ctx, run); err != nil {
		return nil, err
	}
	if err := s.createLeaves(ctx, run, classified); err != nil {
		return nil, err
	}

	run.logger.Info("import complete",
		"folders", len(run.result.Folders),
		"pages", len(run.result.Pages),
		"skipped", len(run.result.Skipped),
		"index_failures", run.result.IndexFailures,
	)

	return run.result, nil
}

// classify classifies every listing entry and plans the folders they need.
// Unsupported and directory-marker entries still contribute their folders.
func (s *importService) classify(run *importRun, files []string) []ClassifiedPath {
	classified := make([]ClassifiedPath, 0, len(files))
	for _, file := range files {
		cp := ClassifyPath(file)
		run.plan.Add(cp.Segments)
		classified = append(classified, cp)

		switch {
		case cp.Degenerate:
			run.logger.Warn("degenerate path treated as unsupported", "path", file)
			run.result.Skipped = append(run.result.Skipped, docsysSvc.SkippedPath{Path: file, Reason: docsysSvc.SkipDegenerate})
		case cp.Kind == KindNone:
			run.result.Skipped = append(run.result.Skipped, docsysSvc.SkippedPath{Path: file, Reason: docsysSvc.SkipDirectoryMarker})
		case cp.Kind == KindUnsupported:
			run.logger.Debug("skipping unsupported file", "path", file)
			run.result.Skipped = append(run.result.Skipped, docsysSvc.SkippedPath{Path: file, Reason: docsysSvc.SkipUnsupported})
		}
	}
	return classified
}

// createFolders persists planned folders in plan order (parents first)
func (s *importService) createFolders(ctx context.Context, run *importRun) error {
	for _, node := range run.plan.Nodes() {
		parentID, err := run.plan.ResolveID(node.ParentKey)
		if err != nil {
			return &domain.PersistenceError{Path: node.Key, Kind: "folder", Err: err}
		}

		folder := buildFolderPage(run.req.APIID, node, parentID, run.req.Contributor, run.nextOrder())
		if err := s.pageRepo.Create(ctx, folder); err != nil {
			run.logger.Error("failed to create folder", "path", node.Key, "error", err)
			return &domain.PersistenceError{Path: node.Key, Kind: "folder", Err: err}
		}
		if err := run.plan.MarkCreated(node.Key, folder.ID); err != nil {
			return &domain.PersistenceError{Path: node.Key, Kind: "folder", Err: err}
		}

		run.logger.Debug("folder created", "id", folder.ID, "path", node.Key, "parent_id", folder.ParentID)
		s.index(ctx, run, folder)
		run.result.Folders = append(run.result.Folders, *folder)
	}
	return nil
}

// createLeaves fetches, persists and indexes one page per supported entry, in listing order
func (s *importService) createLeaves(ctx context.Context, run *importRun, classified []ClassifiedPath) error {
	for _, cp := range classified {
		if !cp.Supported() {
			continue
		}

		parentID, err := run.plan.ResolveID(cp.FolderKey())
		if err != nil {
			return &domain.PersistenceError{Path: cp.Path, Kind: "page", Err: err}
		}

		content, err := s.fetchContent(ctx, run, cp.Path)
		if err != nil {
			return err
		}

		page, _ := BuildLeafPage(LeafInput{
			APIID:       run.req.APIID,
			Path:        cp,
			ParentID:    parentID,
			Content:     content,
			Contributor: run.req.Contributor,
			Order:       run.nextOrder(),
			Source:      run.req.Source,
		})
		if err := s.pageRepo.Create(ctx, page); err != nil {
			run.logger.Error("failed to create page", "path", cp.Path, "error", err)
			return &domain.PersistenceError{Path: cp.Path, Kind: "page", Err: err}
		}

		run.logger.Debug("page created", "id", page.ID, "path", cp.Path, "type", page.Type)
		s.index(ctx, run, page)
		run.result.Pages = append(run.result.Pages, *page)
	}
	return nil
}

// fetchContent reads the content of one listed path, bounded by MaxFetchedContentBytes
func (s *importService) fetchContent(ctx context.Context, run *importRun, path string) ([]byte, error) {
	sourceType := run.req.Source.Type

	rc, err := run.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, &domain.FetchError{SourceType: sourceType, Path: path, Err: err}
	}
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(io.LimitReader(rc, config.MaxFetchedContentBytes+1))
	if err != nil {
		return nil, &domain.FetchError{SourceType: sourceType, Path: path, Err: err}
	}
	if len(content) > config.MaxFetchedContentBytes {
		return nil, &domain.FetchError{
			SourceType: sourceType,
			Path:       path,
			Err:        fmt.Errorf("content exceeds %d bytes", config.MaxFetchedContentBytes),
		}
	}
	return content, nil
}

// index publishes a created page. Failures are logged and counted, never returned.
func (s *importService) index(ctx context.Context, run *importRun, page *models.Page) {
	if err := s.indexer.Index(ctx, page); err != nil {
		run.result.IndexFailures++
		run.logger.Warn("failed to index page",
			"page_id", page.ID,
			"name", page.Name,
			"type", page.Type,
			"error", err,
		)
	}
}

// validateRequest validates an import request
func (s *importService) validateRequest(req *docsysSvc.ImportRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.APIID, validation.Required),
		validation.Field(&req.Contributor, validation.Required),
		validation.Field(&req.Source, validation.Required),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(req.Source,
		validation.Field(&req.Source.Type, validation.Required),
	)
}
