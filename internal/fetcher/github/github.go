// Package github lists and reads documentation files from a GitHub repository tree.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	docsysSvc "portal/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// SourceType is the registry id of this fetcher
	SourceType = "github"

	// DefaultTimeout is the HTTP timeout of a single API call.
	DefaultTimeout = 30 * time.Second

	// DefaultRef is read when the configuration names no ref.
	DefaultRef = "main"

	// requestsPerSecond throttles API calls of one fetcher.
	requestsPerSecond = 10
)

// Config selects the repository tree to import
type Config struct {
	Owner      string `json:"owner"`
	Repository string `json:"repository"`
	Ref        string `json:"ref"`
	Path       string `json:"path"` // optional sub-directory
}

// Validate implements validation.Validatable
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Owner, validation.Required),
		validation.Field(&c.Repository, validation.Required),
	)
}

// Fetcher reads blobs of one repository tree.
// Files must be called before Fetch: it records the blob SHA of every listed path.
type Fetcher struct {
	client  *gh.Client
	cfg     Config
	limiter *rate.Limiter

	mu   sync.Mutex
	shas map[string]string // listed path → blob sha
}

// New creates a fetcher using client
func New(client *gh.Client, cfg Config) *Fetcher {
	if cfg.Ref == "" {
		cfg.Ref = DefaultRef
	}
	cfg.Path = strings.Trim(cfg.Path, "/")

	return &Fetcher{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		shas:    make(map[string]string),
	}
}

// NewClient creates a go-github client, authenticated when token is set
func NewClient(token string) *gh.Client {
	httpClient := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = DefaultTimeout
	}
	return gh.NewClient(httpClient)
}

// NewFactory returns a factory building fetchers that share client
func NewFactory(client *gh.Client) func(json.RawMessage) (docsysSvc.Fetcher, error) {
	return func(configuration json.RawMessage) (docsysSvc.Fetcher, error) {
		var cfg Config
		if err := json.Unmarshal(configuration, &cfg); err != nil {
			return nil, fmt.Errorf("decode configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return New(client, cfg), nil
	}
}

// Files lists the blobs of the configured tree as "/dir/name", relative to the
// configured sub-path. Tree entries are implied by their blobs and not listed.
func (f *Fetcher) Files(ctx context.Context) ([]string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, _, err := f.client.Git.GetTree(ctx, f.cfg.Owner, f.cfg.Repository, f.cfg.Ref, true)
	if err != nil {
		return nil, fmt.Errorf("get tree %s/%s@%s: %w", f.cfg.Owner, f.cfg.Repository, f.cfg.Ref, err)
	}
	if tree.GetTruncated() {
		return nil, fmt.Errorf("tree %s/%s@%s is too large to list", f.cfg.Owner, f.cfg.Repository, f.cfg.Ref)
	}

	prefix := ""
	if f.cfg.Path != "" {
		prefix = f.cfg.Path + "/"
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	files := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		rel, ok := strings.CutPrefix(entry.GetPath(), prefix)
		if !ok || rel == "" {
			continue
		}
		listed := "/" + rel
		f.shas[listed] = entry.GetSHA()
		files = append(files, listed)
	}
	return files, nil
}

// Fetch downloads the blob of a listed path
func (f *Fetcher) Fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	sha, ok := f.shas[path]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%s was not listed by this fetcher", path)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	blob, _, err := f.client.Git.GetBlob(ctx, f.cfg.Owner, f.cfg.Repository, sha)
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", sha, err)
	}

	content := []byte(blob.GetContent())
	if blob.GetEncoding() == "base64" {
		content, err = base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.GetContent(), "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("decode blob %s: %w", sha, err)
		}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}
