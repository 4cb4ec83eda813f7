package source

import (
	"context"
	"fmt"
	"os"

	"github.com/bianoble/confbundle/internal/origin"
)

// DirFetcher serves plain local directories. The directory is merged from
// where it is; nothing is staged or copied.
type DirFetcher struct{}

func (d *DirFetcher) NeedsStaging() bool { return false }

func (d *DirFetcher) Fetch(ctx context.Context, o origin.Origin, staging string) (string, error) {
	info, err := os.Stat(o.URI)
	if err != nil {
		return "", &origin.InstallError{Origin: o.Display(), Op: "reading config folder", Err: err, Hint: "check that the path exists"}
	}
	if !info.IsDir() {
		return "", &origin.InstallError{Origin: o.Display(), Op: "reading config folder", Err: fmt.Errorf("not a directory")}
	}
	return o.URI, nil
}
