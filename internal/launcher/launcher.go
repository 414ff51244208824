package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/ideatui/idea-tui/internal/logging/events"
)

// Launcher spawns the IDE and terminal as detached processes so they
// outlive the program.
type Launcher struct {
	IdeaPath        string
	TerminalCommand string
}

func New(ideaPath, terminalCommand string) *Launcher {
	return &Launcher{IdeaPath: ideaPath, TerminalCommand: terminalCommand}
}

// OpenIDE starts the IDE against dir. An empty dir launches the IDE
// bare, used by the main-menu entry that opens the welcome screen.
func (l *Launcher) OpenIDE(dir string) error {
	args := []string{}
	if dir != "" {
		args = append(args, dir)
	}
	events.Launch.IDE(dir)
	if err := spawnDetached(l.IdeaPath, args...); err != nil {
		events.Launch.Error(err)
		return fmt.Errorf("launch IDE: %w", err)
	}
	return nil
}

// OpenTerminal starts the configured terminal command with dir appended
// as its final argument. The command is split on whitespace, so
// "kitty --directory" becomes ["kitty", "--directory", dir].
func (l *Launcher) OpenTerminal(dir string) error {
	fields := strings.Fields(l.TerminalCommand)
	if len(fields) == 0 {
		return fmt.Errorf("terminal command is empty")
	}
	args := append(fields[1:], dir)
	events.Launch.Terminal(dir)
	if err := spawnDetached(fields[0], args...); err != nil {
		events.Launch.Error(err)
		return fmt.Errorf("launch terminal: %w", err)
	}
	return nil
}

func spawnDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Clone fetches url into destDir using gh, falling back to plain git
// when gh is missing or fails. Returns the cloned project's path.
func Clone(ctx context.Context, url, destDir string) (string, error) {
	name := ProjectNameFromURL(url)
	if name == "" {
		return "", fmt.Errorf("cannot derive project name from %q", url)
	}
	dest := path.Join(destDir, name)
	events.Clone.Start(url, dest)

	cmd := exec.CommandContext(ctx, "gh", "repo", "clone", url, dest, "--", "--quiet")
	ghOut, ghErr := cmd.CombinedOutput()
	if ghErr == nil {
		events.Clone.Done(dest)
		return dest, nil
	}

	cmd = exec.CommandContext(ctx, "git", "clone", "--quiet", url, dest)
	gitOut, gitErr := cmd.CombinedOutput()
	if gitErr == nil {
		events.Clone.Done(dest)
		return dest, nil
	}

	err := fmt.Errorf("clone %s: gh: %s, git: %s",
		url, firstLine(ghOut, ghErr), firstLine(gitOut, gitErr))
	events.Clone.Error(err)
	return "", err
}

// ProjectNameFromURL derives the directory name a clone produces, the
// last path segment with any ".git" suffix removed.
func ProjectNameFromURL(url string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	idx := strings.LastIndexAny(trimmed, "/:")
	name := trimmed
	if idx >= 0 {
		name = trimmed[idx+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

func firstLine(out []byte, err error) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return err.Error()
	}
	return s
}
