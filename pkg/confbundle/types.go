package confbundle

import (
	"github.com/bianoble/confbundle/internal/origin"
	"github.com/bianoble/confbundle/internal/source"
)

// Type aliases re-export the origin model and error types as the public API.

type Origin = origin.Origin
type OriginType = origin.Type
type InstallError = origin.InstallError
type HTTPClient = source.HTTPClient

const (
	TypeGit  = origin.TypeGit
	TypeDir  = origin.TypeDir
	TypeFile = origin.TypeFile
	TypeURL  = origin.TypeURL
)

// Sentinel causes, for use with errors.Is.
var (
	ErrUnknownType        = origin.ErrUnknownType
	ErrNoArguments        = origin.ErrNoArguments
	ErrUnsupportedFormat  = origin.ErrUnsupportedFormat
	ErrNoBaseline         = origin.ErrNoBaseline
	ErrTransport          = origin.ErrTransport
	ErrCorruptLedger      = origin.ErrCorruptLedger
	ErrUnsupportedArchive = origin.ErrUnsupportedArchive
)

// HidePassword masks the password of a URL-shaped resource for display.
func HidePassword(resource string) string {
	return origin.HidePassword(resource)
}
