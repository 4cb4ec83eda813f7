package engine

import (
	"context"
	"time"

	"github.com/bianoble/confbundle/internal/cache"
	"github.com/bianoble/confbundle/internal/ledger"
	"github.com/bianoble/confbundle/internal/logging"
	"github.com/bianoble/confbundle/internal/origin"
	"github.com/bianoble/confbundle/internal/sandbox"
	"github.com/bianoble/confbundle/internal/source"
	clog "github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Installer fetches origins, merges them into the cache and keeps the
// ledger of installed origins up to date.
type Installer struct {
	Cache    *cache.Cache
	Registry *source.Registry
	Log      *clog.Logger
	FS       afero.Fs         // used for origin type inference; nil means the OS filesystem
	Now      func() time.Time // nil means time.Now
}

// Install runs one install request. See Request for the three modes.
func (i *Installer) Install(ctx context.Context, req Request) error {
	if req.URI != "" {
		return i.installNew(ctx, req)
	}

	l, err := i.Cache.Ledger()
	if err != nil {
		return err
	}
	if l.Empty() {
		return &origin.InstallError{Op: "config install", Err: origin.ErrNoArguments}
	}

	if req.overrides() {
		return i.installLast(ctx, l, req)
	}
	return i.replay(ctx, l)
}

func (i *Installer) installNew(ctx context.Context, req Request) error {
	o, err := origin.New(i.fs(), req.params())
	if err != nil {
		return err
	}
	l, err := i.Cache.Ledger()
	if err != nil {
		return err
	}
	if err := i.process(ctx, o); err != nil {
		return err
	}

	if l.Upsert(o) {
		i.log().Debug("Replaced existing config install entry", "origin", o.Display())
	}
	return i.save(o, l)
}

// installLast reinstalls the most recent origin with per-run overrides. The
// type override only selects the fetcher for this run; args and verify_ssl
// are written back.
func (i *Installer) installLast(ctx context.Context, l *ledger.Ledger, req Request) error {
	last, _ := l.Last()
	if req.Args != "" {
		last.Args = req.Args
	}
	last.VerifySSL = req.VerifySSL || last.VerifySSL

	run := last
	if req.Type != "" {
		if !req.Type.Valid() {
			return &origin.InstallError{
				Origin: last.Display(),
				Op:     "config install",
				Err:    origin.ErrUnknownType,
				Hint:   "supported types: git, dir, file, url",
			}
		}
		run.Type = req.Type
	}

	if err := i.process(ctx, run); err != nil {
		return err
	}
	l.ReplaceLast(last)
	return i.save(last, l)
}

// replay reinstalls every recorded origin in order, stopping at the first
// failure. On success only the ledger mtime changes.
func (i *Installer) replay(ctx context.Context, l *ledger.Ledger) error {
	for _, o := range l.Origins {
		i.log().Info("Config install: " + o.Display())
		if err := i.process(ctx, o); err != nil {
			return err
		}
	}
	if err := ledger.Touch(i.Cache.LedgerPath(), i.now()); err != nil {
		return &origin.InstallError{Op: "config install", Err: err}
	}
	return nil
}

func (i *Installer) process(ctx context.Context, o origin.Origin) error {
	f, err := i.Registry.Get(o.Type)
	if err != nil {
		return origin.Errorf(o, "unable to process config install", err)
	}
	merger := &Merger{Cache: i.Cache, Log: i.Log}

	if !f.NeedsStaging() {
		folder, err := f.Fetch(ctx, o, "")
		if err != nil {
			return err
		}
		return merger.Merge(o, folder)
	}

	return sandbox.WithStaging(i.Cache.Path(), func(staging string) error {
		i.log().Debug("Fetching config", "origin", o.Display(), "staging", staging)
		folder, err := f.Fetch(ctx, o, staging)
		if err != nil {
			return err
		}
		return merger.Merge(o, folder)
	})
}

func (i *Installer) save(o origin.Origin, l *ledger.Ledger) error {
	if err := i.Cache.SaveLedger(l); err != nil {
		return origin.Errorf(o, "saving config install file for", err)
	}
	if err := ledger.Touch(i.Cache.LedgerPath(), i.now()); err != nil {
		return origin.Errorf(o, "saving config install file for", err)
	}
	return nil
}

func (i *Installer) fs() afero.Fs {
	if i.FS == nil {
		return afero.NewOsFs()
	}
	return i.FS
}

func (i *Installer) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

func (i *Installer) log() *clog.Logger {
	return logging.Or(i.Log)
}
