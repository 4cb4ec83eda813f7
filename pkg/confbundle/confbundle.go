// Package confbundle provides the public Go library API for confbundle.
//
// confbundle installs configuration bundles (git repositories, local
// folders, archives or archive URLs) into a local configuration cache,
// remembers every installed origin and can replay them later, either on
// demand or when the configured install interval has elapsed.
//
// # Basic Usage
//
//	client, err := confbundle.New(confbundle.Options{CacheDir: "/home/me/.confbundle"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Install a bundle and record it.
//	err = client.Install(ctx, confbundle.InstallOptions{URI: "https://example.com/conf.git"})
//
//	// Reinstall everything recorded so far when it is time to.
//	if due, _ := client.IsInstallDue(); due {
//	    err = client.Install(ctx, confbundle.InstallOptions{})
//	}
package confbundle

import (
	"context"
	"fmt"
	"time"

	"github.com/bianoble/confbundle/internal/cache"
	"github.com/bianoble/confbundle/internal/engine"
	"github.com/bianoble/confbundle/internal/origin"
	"github.com/bianoble/confbundle/internal/source"
	clog "github.com/charmbracelet/log"
)

// Options configures a confbundle client.
type Options struct {
	// CacheDir is the configuration cache. If empty, uses the default
	// ($CONFBUNDLE_HOME, $XDG_CONFIG_HOME/confbundle or ~/.confbundle).
	CacheDir string

	// Logger receives progress output. Nil uses the package logger.
	Logger *clog.Logger

	// HTTPClient downloads archive URLs. Nil builds a client per origin that
	// honors its verify_ssl flag.
	HTTPClient HTTPClient

	// Now overrides the clock used for the install schedule.
	Now func() time.Time
}

// InstallOptions describes one install call.
//
// With URI set, the bundle is installed and recorded. With URI empty, every
// recorded origin is reinstalled in order; if Type, Args or NoVerifySSL are
// given, only the most recent origin is reinstalled using them.
type InstallOptions struct {
	URI          string
	Type         string // git, dir, file or url; empty = infer from URI
	Args         string // extra git clone arguments
	SourceFolder string // subfolder of the bundle to install from
	TargetFolder string // subfolder of the cache to install into
	NoVerifySSL  bool   // skip TLS certificate verification
}

// Client is the main entry point for the confbundle library.
type Client struct {
	cache    *cache.Cache
	registry *source.Registry
	log      *clog.Logger
	now      func() time.Time
}

// New creates a new confbundle Client.
func New(opts Options) (*Client, error) {
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = cache.DefaultDir()
	}
	c, err := cache.New(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}

	return &Client{
		cache:    c,
		registry: source.DefaultRegistry(opts.HTTPClient),
		log:      opts.Logger,
		now:      opts.Now,
	}, nil
}

// CacheDir returns the absolute cache directory the client installs into.
func (c *Client) CacheDir() string {
	return c.cache.Path()
}

// Install fetches and merges configuration into the cache.
func (c *Client) Install(ctx context.Context, opts InstallOptions) error {
	inst := &engine.Installer{
		Cache:    c.cache,
		Registry: c.registry,
		Log:      c.log,
		Now:      c.now,
	}
	return inst.Install(ctx, engine.Request{
		URI:          opts.URI,
		Type:         origin.Type(opts.Type),
		VerifySSL:    !opts.NoVerifySSL,
		Args:         opts.Args,
		SourceFolder: opts.SourceFolder,
		TargetFolder: opts.TargetFolder,
	})
}

// IsInstallDue reports whether config_install_interval has elapsed since the
// last install. It is false when no interval is configured.
func (c *Client) IsInstallDue() (bool, error) {
	s := &engine.Scheduler{Cache: c.cache, Now: c.now}
	return s.Due()
}

// Origins returns the recorded origins, oldest first.
func (c *Client) Origins() ([]Origin, error) {
	l, err := c.cache.Ledger()
	if err != nil {
		return nil, err
	}
	return append([]Origin(nil), l.Origins...), nil
}
