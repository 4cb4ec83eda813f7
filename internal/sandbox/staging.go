package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
)

// StagingDirName is the scratch folder created under the cache root while a
// bundle is cloned, downloaded or extracted.
const StagingDirName = "tmp_config_install"

// StagingPath returns the real path of the staging folder under cacheRoot.
// Symlinked parents are resolved so that paths handed to later stages compare
// equal to what the filesystem reports (macOS /var -> /private/var).
func StagingPath(cacheRoot string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(cacheRoot, StagingDirName))
	if err != nil {
		return "", fmt.Errorf("resolving staging folder: %w", err)
	}
	return resolveExistingPath(abs)
}

// WithStaging creates a fresh staging folder under cacheRoot, runs fn with it
// and removes it afterwards, whatever fn returns. A stale folder left by an
// interrupted run is wiped first. Only one staging folder exists at a time.
func WithStaging(cacheRoot string, fn func(dir string) error) (err error) {
	dir, err := StagingPath(cacheRoot)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing stale staging folder %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating staging folder %s: %w", dir, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("removing staging folder %s: %w", dir, rmErr)
		}
	}()

	return fn(dir)
}
