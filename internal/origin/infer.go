package origin

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Params is the raw user input an Origin is built from.
type Params struct {
	URI          string
	Type         Type // empty = infer from URI
	VerifySSL    bool
	Args         string
	SourceFolder string
	TargetFolder string
}

// Infer deduces the origin type from the shape of uri. It probes fs for
// existing directories and files, so tests can stub it with an in-memory Fs.
func Infer(fs afero.Fs, uri string) (Type, error) {
	if strings.HasSuffix(uri, ".git") {
		return TypeGit, nil
	}
	if isDir, err := afero.IsDir(fs, uri); err == nil && isDir {
		return TypeDir, nil
	}
	if exists, err := afero.Exists(fs, uri); err == nil && exists {
		return TypeFile, nil
	}
	if strings.HasPrefix(uri, "http") {
		return TypeURL, nil
	}
	return "", &InstallError{Origin: HidePassword(uri), Op: "config install", Err: ErrUnknownType}
}

// New builds an Origin from user input, inferring the type when omitted and
// making the URI absolute when it names something that exists on fs.
func New(fs afero.Fs, p Params) (Origin, error) {
	typ := p.Type
	if typ == "" {
		inferred, err := Infer(fs, p.URI)
		if err != nil {
			return Origin{}, err
		}
		typ = inferred
	} else if !typ.Valid() {
		return Origin{}, &InstallError{
			Origin: HidePassword(p.URI),
			Op:     "config install",
			Err:    fmt.Errorf("%w '%s'", ErrUnknownType, typ),
			Hint:   "supported types: git, dir, file, url",
		}
	}

	uri := p.URI
	if exists, err := afero.Exists(fs, uri); err == nil && exists {
		if abs, absErr := filepath.Abs(uri); absErr == nil {
			uri = abs
		}
	}

	return Origin{
		Type:         typ,
		URI:          uri,
		VerifySSL:    p.VerifySSL,
		Args:         p.Args,
		SourceFolder: p.SourceFolder,
		TargetFolder: p.TargetFolder,
	}, nil
}
