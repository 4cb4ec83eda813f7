package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/bianoble/confbundle/internal/origin"
)

// Load reads the ledger at path. A missing file yields an empty ledger.
// Parse and validation failures are reported as origin.ErrCorruptLedger.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Ledger{}, nil
	}
	if err != nil {
		return nil, corrupt(path, err)
	}

	var origins []origin.Origin
	if err := json.Unmarshal(data, &origins); err != nil {
		return nil, corrupt(path, err)
	}

	l := &Ledger{Origins: origins}
	if errs := Validate(l); len(errs) > 0 {
		return nil, corrupt(path, &ValidationError{Errors: errs})
	}
	return l, nil
}

func corrupt(path string, err error) error {
	return &origin.InstallError{
		Op:  "loading config-install file " + path,
		Err: fmt.Errorf("%w: %w", origin.ErrCorruptLedger, err),
	}
}

// Save writes the ledger atomically using a temp file and rename.
func Save(path string, l *Ledger) error {
	origins := l.Origins
	if origins == nil {
		origins = []origin.Origin{}
	}
	data, err := json.MarshalIndent(origins, "", " ")
	if err != nil {
		return fmt.Errorf("marshaling config-install file: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp config-install file %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp config-install file to %s: %w", path, err)
	}

	return nil
}

// Touch marks the ledger at path as written at now without changing its content.
func Touch(path string, now time.Time) error {
	if err := os.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("touching config-install file %s: %w", path, err)
	}
	return nil
}

// ModTime returns the last time the ledger at path was written.
// The boolean is false when the file does not exist.
func ModTime(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("stat config-install file %s: %w", path, err)
	}
	return info.ModTime(), true, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config-install file validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Ledger for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(l *Ledger) []string {
	var errs []string

	for i, o := range l.Origins {
		prefix := fmt.Sprintf("origin[%d]", i)

		switch {
		case o.Type == "":
			errs = append(errs, fmt.Sprintf("%s: 'type' is required", prefix))
		case !o.Type.Valid():
			errs = append(errs, fmt.Sprintf("%s: unknown type '%s' — must be one of: git, dir, file, url", prefix, o.Type))
		}

		if o.URI == "" {
			errs = append(errs, fmt.Sprintf("%s: 'uri' is required", prefix))
		}

		for j := 0; j < i; j++ {
			if l.Origins[j].Equal(o) {
				errs = append(errs, fmt.Sprintf("%s: duplicate of origin[%d]", prefix, j))
				break
			}
		}
	}

	return errs
}
