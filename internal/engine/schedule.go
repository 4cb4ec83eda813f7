package engine

import (
	"time"

	"github.com/bianoble/confbundle/internal/cache"
	"github.com/bianoble/confbundle/internal/ledger"
	"github.com/bianoble/confbundle/internal/origin"
)

// Scheduler decides whether a periodic reinstall is due.
type Scheduler struct {
	Cache *cache.Cache
	Now   func() time.Time
}

// Due reports whether config_install_interval has elapsed since the ledger
// was last written. Without an interval nothing is ever due.
func (s *Scheduler) Due() (bool, error) {
	cfg, err := s.Cache.Config()
	if err != nil {
		return false, &origin.InstallError{Op: "reading config_install_interval", Err: err}
	}
	interval, ok, err := cfg.InstallInterval()
	if err != nil {
		return false, &origin.InstallError{Op: "reading config_install_interval", Err: err}
	}
	if !ok {
		return false, nil
	}

	mtime, exists, err := ledger.ModTime(s.Cache.LedgerPath())
	if err != nil {
		return false, &origin.InstallError{Op: "reading config install file", Err: err}
	}
	if !exists {
		return false, &origin.InstallError{Op: "scheduled config install", Err: origin.ErrNoBaseline}
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return now.After(mtime.In(time.Local).Add(interval)), nil
}
