package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bianoble/confbundle/internal/cache"
	"github.com/bianoble/confbundle/internal/logging"
	"github.com/bianoble/confbundle/internal/origin"
	"github.com/bianoble/confbundle/internal/source"
	"github.com/klauspost/compress/zip"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(filepath.Join(t.TempDir(), "home"))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func writeBundle(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist (err=%v)", path, err)
	}
}

// stagingFetcher writes a fixed file set into the staging folder and records
// what it was asked to fetch.
type stagingFetcher struct {
	files   map[string]string
	err     error
	calls   []origin.Origin
	staging string
}

func (f *stagingFetcher) NeedsStaging() bool { return true }

func (f *stagingFetcher) Fetch(ctx context.Context, o origin.Origin, staging string) (string, error) {
	f.calls = append(f.calls, o)
	f.staging = staging
	for name, content := range f.files {
		path := filepath.Join(staging, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return "", err
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return staging, nil
}

func newTestInstaller(t *testing.T, c *cache.Cache) *Installer {
	t.Helper()
	return &Installer{
		Cache:    c,
		Registry: source.DefaultRegistry(nil),
		Log:      logging.Discard(),
		Now:      func() time.Time { return fixedNow },
	}
}

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
