package origin

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by InstallError. Match them with errors.Is.
var (
	ErrUnknownType        = errors.New("unable to deduce origin type")
	ErrNoArguments        = errors.New("called config install without arguments")
	ErrUnsupportedFormat  = errors.New("unsupported install input format")
	ErrNoBaseline         = errors.New("config_install_interval defined, but no config_install file")
	ErrTransport          = errors.New("transport failure")
	ErrCorruptLedger      = errors.New("config-install file is unreadable")
	ErrUnsupportedArchive = errors.New("unsupported archive format")
)

// InstallError is the single error category surfaced by config installation.
// Origin holds the already-redacted URI of the origin involved, if any.
type InstallError struct {
	Origin string
	Op     string
	Err    error
	Hint   string
}

func (e *InstallError) Error() string {
	msg := e.Op
	if e.Origin != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Origin)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += " — " + e.Hint
	}
	return msg
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Errorf builds an InstallError for origin o, redacting its URI.
func Errorf(o Origin, op string, err error) *InstallError {
	return &InstallError{Origin: o.Display(), Op: op, Err: err}
}
