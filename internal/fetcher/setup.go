package fetcher

import (
	"portal/internal/fetcher/github"
	"portal/internal/fetcher/local"
	"portal/internal/fetcher/static"

	gh "github.com/google/go-github/v80/github"
	"github.com/spf13/afero"
)

// NewDefaultRegistry registers every built-in fetcher type.
// localRoot is the filesystem the local fetcher is confined to.
func NewDefaultRegistry(localRoot afero.Fs, client *gh.Client) *Registry {
	r := NewRegistry()
	r.Register(local.SourceType, local.NewFactory(localRoot))
	r.Register(github.SourceType, github.NewFactory(client))
	r.Register(static.SourceType, static.Factory)
	return r
}
