package origin

import (
	"fmt"
	"net/url"
	"strings"
)

// Type identifies the kind of location a configuration bundle is fetched from.
type Type string

const (
	TypeGit  Type = "git"  // version-controlled repository
	TypeDir  Type = "dir"  // plain local directory
	TypeFile Type = "file" // local archive file
	TypeURL  Type = "url"  // remote archive
)

// Valid reports whether t is one of the known origin kinds.
func (t Type) Valid() bool {
	switch t {
	case TypeGit, TypeDir, TypeFile, TypeURL:
		return true
	}
	return false
}

// Origin describes one configuration source as recorded in the install ledger.
type Origin struct {
	Type         Type   `json:"type"`
	URI          string `json:"uri"`
	VerifySSL    bool   `json:"verify_ssl"`
	Args         string `json:"args"`
	SourceFolder string `json:"source_folder"`
	TargetFolder string `json:"target_folder"`
}

// Equal reports whether two origins address the same content.
// VerifySSL is not part of the identity: re-declaring an origin with a
// different verification flag still refers to the same origin.
func (o Origin) Equal(other Origin) bool {
	return o.Type == other.Type &&
		o.URI == other.URI &&
		o.Args == other.Args &&
		o.SourceFolder == other.SourceFolder &&
		o.TargetFolder == other.TargetFolder
}

// Display returns the URI with any embedded password hidden.
func (o Origin) Display() string {
	return HidePassword(o.URI)
}

func (o Origin) String() string {
	return fmt.Sprintf("%s %s", o.Type, o.Display())
}

const hiddenPassword = "<hidden>"

// HidePassword replaces every occurrence of the password embedded in a URL
// with a placeholder. Non-URLs and URLs without a password are returned as is.
func HidePassword(resource string) string {
	u, err := url.Parse(resource)
	if err != nil || u.User == nil {
		return resource
	}
	password, ok := u.User.Password()
	if !ok || password == "" {
		return resource
	}
	return strings.ReplaceAll(resource, password, hiddenPassword)
}
