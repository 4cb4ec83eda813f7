// Package logging provides the progress logger shared by the installer and CLI.
package logging

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger used when a component is given none.
var L = New(os.Stderr, false, false)

// New returns a logger writing to w. verbose enables debug lines; quiet
// limits output to errors and wins over verbose.
func New(w io.Writer, verbose, quiet bool) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: false,
		Prefix:          "confbundle",
	})
	switch {
	case quiet:
		l.SetLevel(clog.ErrorLevel)
	case verbose:
		l.SetLevel(clog.DebugLevel)
	default:
		l.SetLevel(clog.InfoLevel)
	}
	return l
}

// Discard returns a logger that drops everything, for tests and embedding.
func Discard() *clog.Logger {
	return New(io.Discard, false, true)
}

// Or returns l, or the package logger when l is nil.
func Or(l *clog.Logger) *clog.Logger {
	if l == nil {
		return L
	}
	return l
}
