package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bianoble/confbundle/internal/cache"
	"github.com/bianoble/confbundle/internal/config"
	"github.com/bianoble/confbundle/internal/logging"
	"github.com/bianoble/confbundle/internal/origin"
	"github.com/bianoble/confbundle/internal/remotes"
	"github.com/bianoble/confbundle/internal/sandbox"
	clog "github.com/charmbracelet/log"
)

// Files only skipped when they sit at the top of the bundle.
var rootOnlySkips = map[string]bool{
	"README.md":   true,
	"LICENSE.txt": true,
}

// Merger applies a fetched bundle folder to the cache.
type Merger struct {
	Cache *cache.Cache
	Log   *clog.Logger
}

// Merge walks root (or root/o.SourceFolder) and applies each file to the
// cache according to its name. Files already copied stay in place if a
// later file fails.
func (m *Merger) Merge(o origin.Origin, root string) error {
	if o.SourceFolder != "" {
		root = filepath.Join(root, o.SourceFolder)
	}
	// WalkDir does not descend into a symlinked root.
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return origin.Errorf(o, "reading config bundle", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return origin.Errorf(o, "reading config bundle", err)
	}
	if !info.IsDir() {
		return origin.Errorf(o, "reading config bundle", fmt.Errorf("%s is not a directory", root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return origin.Errorf(o, "reading config bundle", err)
			}
			if !target.Mode().IsRegular() {
				m.log().Debug("Skipping symlink", "path", path)
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return m.mergeFile(o, path, rel)
	})
}

func (m *Merger) mergeFile(o origin.Origin, path, rel string) error {
	name := filepath.Base(rel)
	log := m.log()

	switch name {
	case cache.SettingsFileName:
		log.Info("Installing settings.yml")
		if err := sandbox.CopyFile(path, m.Cache.SettingsPath()); err != nil {
			return origin.Errorf(o, "installing settings.yml from", err)
		}
	case config.FileName:
		log.Info("Processing conf.yaml")
		if err := m.mergeConfig(path); err != nil {
			return origin.Errorf(o, "merging conf.yaml from", err)
		}
	case remotes.TextFileName:
		log.Info("Defining remotes from remotes.txt")
		if err := m.defineRemotes(path); err != nil {
			return origin.Errorf(o, "defining remotes from", err)
		}
	case remotes.LegacyTextName, remotes.LegacyJSONName:
		log.Info("Defining remotes from " + name)
		if err := m.migrateRemotes(path, name); err != nil {
			return origin.Errorf(o, "defining remotes from", err)
		}
	case remotes.FileName:
		return &origin.InstallError{
			Origin: o.Display(),
			Op:     "installing config from",
			Err:    fmt.Errorf("%w: remotes.json install is not supported yet. Use 'remotes.txt'", origin.ErrUnsupportedFormat),
		}
	default:
		relDir := filepath.Dir(rel)
		if relDir == "." && rootOnlySkips[name] {
			return nil
		}
		if relDir == "." {
			relDir = ""
		}
		dir, err := sandbox.SafeMkdirAll(m.Cache.Path(), filepath.Join(o.TargetFolder, relDir), 0755)
		if err != nil {
			return origin.Errorf(o, "copying "+rel+" from", err)
		}
		log.Info("Copying file", "file", name, "to", dir)
		if err := sandbox.CopyFile(path, filepath.Join(dir, name)); err != nil {
			return origin.Errorf(o, "copying "+rel+" from", err)
		}
	}
	return nil
}

func (m *Merger) mergeConfig(path string) error {
	current, err := m.Cache.Config()
	if err != nil {
		return err
	}
	fetched, err := config.Load(path)
	if err != nil {
		return err
	}
	return config.Save(config.Merge(current, fetched))
}

func (m *Merger) defineRemotes(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	defined, err := remotes.ParseText(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	reg, err := m.Cache.Remotes()
	if err != nil {
		return err
	}
	reg.Define(defined)
	return reg.Save()
}

func (m *Merger) migrateRemotes(path, name string) error {
	if err := os.Remove(m.Cache.RemotesPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", m.Cache.RemotesPath(), err)
	}
	if err := sandbox.CopyFile(path, filepath.Join(m.Cache.Path(), name)); err != nil {
		return err
	}
	_, err := remotes.MigrateLegacy(m.Cache.Path())
	return err
}

func (m *Merger) log() *clog.Logger {
	return logging.Or(m.Log)
}
