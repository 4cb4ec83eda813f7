package remotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// legacyJSON is the layout of registry.json files.
type legacyJSON struct {
	Remotes []Remote `json:"remotes"`
}

// MigrateLegacy upgrades a legacy registry file found in cacheDir into
// remotes.json and removes the legacy file. registry.json wins over
// registry.txt when both exist. It reports whether a migration happened.
func MigrateLegacy(cacheDir string) (bool, error) {
	jsonPath := filepath.Join(cacheDir, LegacyJSONName)
	textPath := filepath.Join(cacheDir, LegacyTextName)

	var (
		legacyPath string
		remotes    []Remote
	)

	switch {
	case exists(jsonPath):
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return false, fmt.Errorf("reading legacy registry %s: %w", jsonPath, err)
		}
		var legacy legacyJSON
		if err := json.Unmarshal(data, &legacy); err != nil {
			return false, fmt.Errorf("parsing legacy registry %s: %w", jsonPath, err)
		}
		legacyPath, remotes = jsonPath, legacy.Remotes
	case exists(textPath):
		data, err := os.ReadFile(textPath)
		if err != nil {
			return false, fmt.Errorf("reading legacy registry %s: %w", textPath, err)
		}
		parsed, err := ParseText(string(data))
		if err != nil {
			return false, fmt.Errorf("parsing legacy registry %s: %w", textPath, err)
		}
		legacyPath, remotes = textPath, parsed
	default:
		return false, nil
	}

	reg := &Registry{Remotes: remotes, path: filepath.Join(cacheDir, FileName)}
	if err := reg.Save(); err != nil {
		return false, err
	}
	if err := os.Remove(legacyPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("removing legacy registry %s: %w", legacyPath, err)
	}
	return true, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
