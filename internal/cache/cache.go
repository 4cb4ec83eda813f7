package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bianoble/confbundle/internal/config"
	"github.com/bianoble/confbundle/internal/ledger"
	"github.com/bianoble/confbundle/internal/remotes"
)

// SettingsFileName is copied verbatim into the cache root on install.
const SettingsFileName = "settings.yml"

// Cache is the local configuration directory installs are merged into.
type Cache struct {
	dir string
}

// New opens the cache at dir, creating the directory if it does not exist.
func New(dir string) (*Cache, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", abs, err)
	}
	return &Cache{dir: abs}, nil
}

// DefaultDir returns the default cache directory.
// Uses CONFBUNDLE_HOME if set, then XDG_CONFIG_HOME/confbundle, otherwise ~/.confbundle.
func DefaultDir() string {
	if home := os.Getenv("CONFBUNDLE_HOME"); home != "" {
		return home
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "confbundle")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "confbundle")
	}
	return filepath.Join(home, ".confbundle")
}

// Path returns the cache directory path.
func (c *Cache) Path() string {
	return c.dir
}

// SettingsPath returns the location of settings.yml.
func (c *Cache) SettingsPath() string {
	return filepath.Join(c.dir, SettingsFileName)
}

// ConfigPath returns the location of the main config file.
func (c *Cache) ConfigPath() string {
	return filepath.Join(c.dir, config.FileName)
}

// RemotesPath returns the location of the current remote registry.
func (c *Cache) RemotesPath() string {
	return filepath.Join(c.dir, remotes.FileName)
}

// LedgerPath returns the location of the install ledger.
func (c *Cache) LedgerPath() string {
	return filepath.Join(c.dir, ledger.FileName)
}

// Config loads the main config. A missing file yields an empty config.
func (c *Cache) Config() (*config.Config, error) {
	return config.Load(c.ConfigPath())
}

// Remotes loads the remote registry. A missing file yields an empty registry.
func (c *Cache) Remotes() (*remotes.Registry, error) {
	return remotes.Load(c.RemotesPath())
}

// Ledger loads the install ledger. A missing file yields an empty ledger.
func (c *Cache) Ledger() (*ledger.Ledger, error) {
	return ledger.Load(c.LedgerPath())
}

// SaveLedger persists the install ledger.
func (c *Cache) SaveLedger(l *ledger.Ledger) error {
	return ledger.Save(c.LedgerPath(), l)
}
