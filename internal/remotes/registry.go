// Package remotes manages the cache's remote registry (remotes.json) and
// the legacy formats it replaces.
package remotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// File names understood by the registry.
const (
	FileName       = "remotes.json"  // current registry
	TextFileName   = "remotes.txt"   // plain-text remote list accepted as install input
	LegacyTextName = "registry.txt"  // legacy registry, text flavour
	LegacyJSONName = "registry.json" // legacy registry, JSON flavour
)

// Remote is a named package server.
type Remote struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	VerifySSL bool   `json:"verify_ssl"`
}

// Registry is the ordered list of remotes persisted in remotes.json.
type Registry struct {
	Remotes []Remote `json:"remotes"`
	path    string
}

// Load reads the registry at path. A missing file yields an empty registry.
func Load(path string) (*Registry, error) {
	r := &Registry{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading remotes %s: %w", path, err)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing remotes %s: %w", path, err)
	}
	return r, nil
}

// Path returns the file the registry is saved to.
func (r *Registry) Path() string {
	return r.path
}

// Get returns the remote with the given name.
func (r *Registry) Get(name string) (Remote, bool) {
	for _, rm := range r.Remotes {
		if rm.Name == name {
			return rm, true
		}
	}
	return Remote{}, false
}

// Define adds remotes to the registry. A remote whose name is already
// registered replaces the existing entry in place; new names are appended.
func (r *Registry) Define(remotes []Remote) {
	for _, rm := range remotes {
		replaced := false
		for i := range r.Remotes {
			if r.Remotes[i].Name == rm.Name {
				r.Remotes[i] = rm
				replaced = true
				break
			}
		}
		if !replaced {
			r.Remotes = append(r.Remotes, rm)
		}
	}
}

// Save writes the registry atomically.
func (r *Registry) Save() error {
	if r.Remotes == nil {
		r.Remotes = []Remote{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling remotes: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp remotes %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp remotes to %s: %w", r.path, err)
	}
	return nil
}
