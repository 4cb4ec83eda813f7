package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianoble/confbundle/internal/origin"
)

func TestURLFetcherSuccess(t *testing.T) {
	payload := zipBytes(t, bundleFiles)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	staging := t.TempDir()
	u := &URLFetcher{Client: srv.Client()}
	folder, err := u.Fetch(context.Background(), origin.Origin{Type: origin.TypeURL, URI: srv.URL + "/conf.zip", VerifySSL: true}, staging)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if folder != staging {
		t.Errorf("folder = %q, want %q", folder, staging)
	}
	assertTree(t, staging, bundleFiles)

	if _, err := os.Stat(filepath.Join(staging, DownloadName)); !os.IsNotExist(err) {
		t.Error("downloaded archive should be removed after extraction")
	}
}

func TestURLFetcherTarZst(t *testing.T) {
	payload := tarZstBytes(t, bundleFiles)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	staging := t.TempDir()
	u := &URLFetcher{Client: srv.Client()}
	if _, err := u.Fetch(context.Background(), origin.Origin{Type: origin.TypeURL, URI: srv.URL + "/conf.tar.zst"}, staging); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	assertTree(t, staging, bundleFiles)
}

func TestURLFetcherHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	u := &URLFetcher{Client: srv.Client()}
	_, err := u.Fetch(context.Background(), origin.Origin{Type: origin.TypeURL, URI: srv.URL + "/missing.zip"}, t.TempDir())
	if !errors.Is(err, origin.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status in error: %v", err)
	}
	if !strings.Contains(err.Error(), "error while installing config from") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestURLFetcherNotAnArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>login</html>"))
	}))
	defer srv.Close()

	u := &URLFetcher{Client: srv.Client()}
	_, err := u.Fetch(context.Background(), origin.Origin{Type: origin.TypeURL, URI: srv.URL}, t.TempDir())
	if !errors.Is(err, origin.ErrUnsupportedArchive) {
		t.Fatalf("expected ErrUnsupportedArchive, got %v", err)
	}
}

func TestURLFetcherHidesPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	uri := strings.Replace(srv.URL, "http://", "http://user:s3cret@", 1) + "/conf.zip"
	u := &URLFetcher{Client: srv.Client()}
	_, err := u.Fetch(context.Background(), origin.Origin{Type: origin.TypeURL, URI: uri}, t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "s3cret") {
		t.Errorf("password leaked in error: %v", err)
	}
}

func TestURLFetcherSkipsVerification(t *testing.T) {
	payload := zipBytes(t, bundleFiles)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	u := &URLFetcher{}
	staging := t.TempDir()
	if _, err := u.Fetch(context.Background(), origin.Origin{Type: origin.TypeURL, URI: srv.URL + "/conf.zip", VerifySSL: false}, staging); err != nil {
		t.Fatalf("Fetch with verification disabled: %v", err)
	}
	assertTree(t, staging, bundleFiles)

	_, err := u.Fetch(context.Background(), origin.Origin{Type: origin.TypeURL, URI: srv.URL + "/conf.zip", VerifySSL: true}, t.TempDir())
	if !errors.Is(err, origin.ErrTransport) {
		t.Errorf("expected certificate failure as ErrTransport, got %v", err)
	}
}

func TestURLFetcherCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(zipBytes(t, bundleFiles))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := &URLFetcher{Client: srv.Client()}
	if _, err := u.Fetch(ctx, origin.Origin{Type: origin.TypeURL, URI: srv.URL}, t.TempDir()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
