package docsystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"portal/internal/domain"
	models "portal/internal/domain/models/docsystem"
	"portal/internal/domain/repositories"
	docsysRepo "portal/internal/domain/repositories/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryPageRepo records created pages and assigns sequential IDs
type memoryPageRepo struct {
	mu      sync.Mutex
	created []models.Page
	nextID  int
	failOn  func(page *models.Page) error
}

func (r *memoryPageRepo) Create(ctx context.Context, page *models.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		if err := r.failOn(page); err != nil {
			return err
		}
	}
	r.nextID++
	page.ID = fmt.Sprintf("page-%d", r.nextID)
	r.created = append(r.created, *page)
	return nil
}

func (r *memoryPageRepo) GetByID(ctx context.Context, id, apiID string) (*models.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.created {
		if r.created[i].ID == id && r.created[i].APIID == apiID {
			page := r.created[i]
			return &page, nil
		}
	}
	return nil, fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
}

func (r *memoryPageRepo) ListByAPI(ctx context.Context, apiID string, filter *docsysRepo.PageFilter) ([]models.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pages := []models.Page{}
	for _, p := range r.created {
		if p.APIID != apiID {
			continue
		}
		if filter != nil && filter.Type != nil && p.Type != *filter.Type {
			continue
		}
		if filter != nil && filter.Name != nil && p.Name != *filter.Name {
			continue
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func (r *memoryPageRepo) MaxOrder(ctx context.Context, apiID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxOrder := 0
	for _, p := range r.created {
		if p.APIID == apiID && p.Order > maxOrder {
			maxOrder = p.Order
		}
	}
	return maxOrder, nil
}

// byName returns the created pages with the given name and type
func (r *memoryPageRepo) byName(name string, pageType models.PageType) []models.Page {
	var out []models.Page
	for _, p := range r.created {
		if p.Name == name && p.Type == pageType {
			out = append(out, p)
		}
	}
	return out
}

func (r *memoryPageRepo) count(folders bool) int {
	n := 0
	for _, p := range r.created {
		if p.IsFolder() == folders {
			n++
		}
	}
	return n
}

// recordingIndexer records indexed page IDs and fails for IDs in failIDs
type recordingIndexer struct {
	mu      sync.Mutex
	indexed []string
	failIDs map[string]bool
}

func (i *recordingIndexer) Index(ctx context.Context, page *models.Page) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.indexed = append(i.indexed, page.ID)
	if i.failIDs[page.ID] {
		return errors.New("search backend unavailable")
	}
	return nil
}

// fakeFetcher serves a fixed listing; content defaults to "content of <path>"
type fakeFetcher struct {
	files     []string
	content   map[string]string
	listErr   error
	failPaths map[string]bool
	fetched   []string
	// hang blocks Files (key "") or Fetch of a path until ctx is done
	hang map[string]bool
}

func (f *fakeFetcher) Files(ctx context.Context) ([]string, error) {
	if f.hang[""] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.files, nil
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	f.fetched = append(f.fetched, path)
	if f.hang[path] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.failPaths[path] {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	content, ok := f.content[path]
	if !ok {
		content = "content of " + path
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// fakeResolver resolves every source to the same fetcher
type fakeResolver struct {
	fetcher docsysSvc.Fetcher
	err     error
}

func (r *fakeResolver) Resolve(source *models.PageSource) (docsysSvc.Fetcher, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.fetcher, nil
}

// passthroughTx runs fn without a real transaction
type passthroughTx struct{}

func (passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
