package source

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bianoble/confbundle/internal/origin"
)

// DownloadName is the synthetic file name remote archives are saved under
// inside the staging folder.
const DownloadName = "config.zip"

// URLFetcher downloads remote archives and extracts them.
type URLFetcher struct {
	// Client performs the download. Nil builds a client per origin that
	// honors its VerifySSL flag.
	Client  HTTPClient
	Timeout time.Duration // fetch timeout (0 = no extra timeout beyond context)
}

func (u *URLFetcher) NeedsStaging() bool { return true }

// Fetch downloads o.URI into staging, extracts it there and removes the
// downloaded archive. Any failure is reported as a single InstallError.
func (u *URLFetcher) Fetch(ctx context.Context, o origin.Origin, staging string) (string, error) {
	archivePath := filepath.Join(staging, DownloadName)

	if err := u.download(ctx, o, archivePath); err != nil {
		return "", u.wrap(o, err)
	}
	if err := Extract(archivePath, staging); err != nil {
		return "", u.wrap(o, err)
	}
	if err := os.Remove(archivePath); err != nil {
		return "", u.wrap(o, fmt.Errorf("removing downloaded archive: %w", err))
	}
	return staging, nil
}

func (u *URLFetcher) wrap(o origin.Origin, err error) error {
	return &origin.InstallError{
		Origin: o.Display(),
		Op:     "error while installing config from",
		Err:    err,
	}
}

func (u *URLFetcher) download(ctx context.Context, o origin.Origin, dest string) error {
	if u.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.URI, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := u.client(o.VerifySSL).Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetching %s: %s", origin.ErrTransport, o.Display(), redactOutput(err.Error(), o.URI))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d from %s", origin.ErrTransport, resp.StatusCode, o.Display())
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: reading response: %w", origin.ErrTransport, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	return nil
}

func (u *URLFetcher) client(verifySSL bool) HTTPClient {
	if u.Client != nil {
		return u.Client
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !verifySSL} //nolint:gosec
	return &http.Client{Transport: transport}
}
