package engine

import "github.com/bianoble/confbundle/internal/origin"

// Request describes one install invocation.
//
// With URI set the origin is installed and recorded in the ledger. With URI
// empty the ledger is replayed; if Type, Args or a disabled VerifySSL are
// given, only the most recent origin is installed with those overrides.
type Request struct {
	URI          string
	Type         origin.Type
	VerifySSL    bool
	Args         string
	SourceFolder string
	TargetFolder string
}

func (r Request) params() origin.Params {
	return origin.Params{
		URI:          r.URI,
		Type:         r.Type,
		VerifySSL:    r.VerifySSL,
		Args:         r.Args,
		SourceFolder: r.SourceFolder,
		TargetFolder: r.TargetFolder,
	}
}

// overrides reports whether a URI-less request carries per-run overrides.
func (r Request) overrides() bool {
	return r.Type != "" || r.Args != "" || !r.VerifySSL
}
