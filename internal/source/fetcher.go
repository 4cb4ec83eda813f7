package source

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/bianoble/confbundle/internal/origin"
)

// Fetcher materializes an origin's content on the local filesystem.
type Fetcher interface {
	// Fetch makes the origin's content available and returns the folder the
	// merge should read from. staging is a fresh, empty folder when
	// NeedsStaging reports true, and empty otherwise.
	Fetch(ctx context.Context, o origin.Origin, staging string) (string, error)

	// NeedsStaging reports whether Fetch writes into a staging folder.
	NeedsStaging() bool
}

// Registry maps origin types to Fetcher implementations.
type Registry struct {
	fetchers map[origin.Type]Fetcher
}

// NewRegistry creates a new empty fetcher registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: make(map[origin.Type]Fetcher)}
}

// DefaultRegistry returns a registry with all built-in fetchers. client is
// used for archive downloads; nil selects a client built per origin.
func DefaultRegistry(client HTTPClient) *Registry {
	reg := NewRegistry()
	reg.Register(origin.TypeGit, &GitFetcher{})
	reg.Register(origin.TypeDir, &DirFetcher{})
	reg.Register(origin.TypeFile, &ArchiveFetcher{})
	reg.Register(origin.TypeURL, &URLFetcher{Client: client})
	return reg
}

// Register adds a fetcher for the given origin type.
func (r *Registry) Register(t origin.Type, f Fetcher) {
	r.fetchers[t] = f
}

// Get returns the fetcher for the given origin type.
func (r *Registry) Get(t origin.Type) (Fetcher, error) {
	f, ok := r.fetchers[t]
	if !ok {
		return nil, fmt.Errorf("%w '%s' — supported types: %s", origin.ErrUnknownType, t, r.supportedTypes())
	}
	return f, nil
}

func (r *Registry) supportedTypes() string {
	types := make([]string, 0, len(r.fetchers))
	for t := range r.fetchers {
		types = append(types, string(t))
	}
	if len(types) == 0 {
		return "(none registered)"
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
