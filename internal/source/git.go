package source

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bianoble/confbundle/internal/origin"
	"github.com/mattn/go-shellwords"
)

// GitFetcher clones repositories with the git executable.
type GitFetcher struct {
	// Binary is the git executable to run. Empty means "git" from PATH.
	Binary string
}

func (g *GitFetcher) NeedsStaging() bool { return true }

// Fetch clones o.URI into staging. o.Args is appended to the clone command
// line (e.g. "-b release --depth 1"); o.VerifySSL controls certificate checks.
func (g *GitFetcher) Fetch(ctx context.Context, o origin.Origin, staging string) (string, error) {
	extra, err := shellwords.Parse(o.Args)
	if err != nil {
		return "", &origin.InstallError{
			Origin: o.Display(),
			Op:     "can't clone repo",
			Err:    fmt.Errorf("parsing args %q: %w", o.Args, err),
		}
	}

	if err := g.clone(ctx, o.URI, staging, o.VerifySSL, extra); err != nil {
		return "", &origin.InstallError{
			Origin: o.Display(),
			Op:     "can't clone repo",
			Err:    fmt.Errorf("%w: %w", origin.ErrTransport, err),
			Hint:   "check repo URL, args, and authentication",
		}
	}
	return staging, nil
}

func (g *GitFetcher) clone(ctx context.Context, repo, dest string, verifySSL bool, extra []string) error {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	args := []string{"-c", "http.sslVerify=" + strconv.FormatBool(verifySSL), "clone", repo, dest}
	args = append(args, extra...)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone failed: %s: %w", redactOutput(strings.TrimSpace(string(output)), repo), err)
	}
	return nil
}

// redactOutput hides the repo password if git echoes the URL back.
func redactOutput(output, repo string) string {
	hidden := origin.HidePassword(repo)
	if hidden == repo {
		return output
	}
	return strings.ReplaceAll(output, repo, hidden)
}
