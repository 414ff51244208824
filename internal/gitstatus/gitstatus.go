package gitstatus

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Status is the cached branch and dirty-state summary for one project
// directory. Available is false when the directory is not a repository
// or the git invocation failed; that is a normal, displayable state.
type Status struct {
	Branch    string
	Dirty     bool
	Available bool
	FetchedAt time.Time
}

// Unavailable is the status used for non-repositories and failed fetches.
var Unavailable = Status{}

// Fetch computes the git status of dir by invoking the git CLI. Any
// failure resolves to Unavailable rather than an error: a project
// without git status is not an application failure.
func Fetch(ctx context.Context, dir string) Status {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return Unavailable
	}
	branch, err := runGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return Unavailable
	}
	porcelain, err := runGit(ctx, dir, "status", "--porcelain")
	if err != nil {
		return Unavailable
	}
	return Status{
		Branch:    branch,
		Dirty:     porcelain != "",
		Available: true,
	}
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}
