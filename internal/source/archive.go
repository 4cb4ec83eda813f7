package source

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bianoble/confbundle/internal/origin"
	"github.com/bianoble/confbundle/internal/sandbox"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ArchiveFetcher extracts local archive files. The archive itself belongs to
// the caller and is never removed.
type ArchiveFetcher struct{}

func (a *ArchiveFetcher) NeedsStaging() bool { return true }

func (a *ArchiveFetcher) Fetch(ctx context.Context, o origin.Origin, staging string) (string, error) {
	if err := Extract(o.URI, staging); err != nil {
		return "", &origin.InstallError{Origin: o.Display(), Op: "extracting config archive", Err: err}
	}
	return staging, nil
}

// ArchiveFormat identifies a supported archive encoding.
type ArchiveFormat string

const (
	FormatZip     ArchiveFormat = "zip"
	FormatTarGzip ArchiveFormat = "tar.gz"
	FormatTarZstd ArchiveFormat = "tar.zst"
	FormatTar     ArchiveFormat = "tar"
)

var (
	zipMagic  = []byte("PK\x03\x04")
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	tarMagic  = []byte("ustar")
)

// DetectFormat sniffs the archive format from the leading bytes of r.
func DetectFormat(r io.Reader) (ArchiveFormat, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading archive header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, zipMagic):
		return FormatZip, nil
	case bytes.HasPrefix(head, gzipMagic):
		return FormatTarGzip, nil
	case bytes.HasPrefix(head, zstdMagic):
		return FormatTarZstd, nil
	case len(head) >= 262 && bytes.HasPrefix(head[257:], tarMagic):
		return FormatTar, nil
	}
	return "", origin.ErrUnsupportedArchive
}

// Extract unpacks the archive at archivePath into dest. Zip, gzip- or
// zstd-compressed tar and plain tar archives are supported. Entries that would
// land outside dest are rejected; symlinks and other special entries are skipped.
func Extract(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	format, err := DetectFormat(f)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(archivePath), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding archive: %w", err)
	}

	switch format {
	case FormatZip:
		return extractZip(archivePath, dest)
	case FormatTarGzip:
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			return fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		return extractTar(gz, dest)
	case FormatTarZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		return extractTar(zr, dest)
	default:
		return extractTar(f, dest)
	}
}

func extractZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		info := zf.FileInfo()
		if info.IsDir() {
			if _, err := sandbox.SafeMkdirAll(dest, zf.Name, 0755); err != nil {
				return fmt.Errorf("entry %s: %w", zf.Name, err)
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("entry %s: %w", zf.Name, err)
		}
		err = writeEntry(dest, zf.Name, info.Mode().Perm(), rc)
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar: %w", err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if _, err := sandbox.SafeMkdirAll(dest, hdr.Name, 0755); err != nil {
				return fmt.Errorf("entry %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := writeEntry(dest, hdr.Name, fs.FileMode(hdr.Mode).Perm(), tr); err != nil {
				return err
			}
		}
	}
}

func writeEntry(dest, name string, perm fs.FileMode, r io.Reader) error {
	target, err := sandbox.ValidatePath(dest, name)
	if err != nil {
		return fmt.Errorf("entry %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("entry %s: %w", name, err)
	}
	if perm == 0 {
		perm = 0644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0200)
	if err != nil {
		return fmt.Errorf("entry %s: %w", name, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("entry %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("entry %s: %w", name, err)
	}
	return nil
}
