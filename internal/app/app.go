package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ideatui/idea-tui/internal/gitstatus"
	"github.com/ideatui/idea-tui/internal/history"
	"github.com/ideatui/idea-tui/internal/launcher"
	"github.com/ideatui/idea-tui/internal/logging/events"
	"github.com/ideatui/idea-tui/internal/project"
	"github.com/ideatui/idea-tui/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	BaseDir         string
	IdeaPath        string
	TerminalCommand string
	Theme           string
	Watch           bool
	StateDir        string
	ConfigPath      string
	Width           int
	Height          int
	ShowFooter      bool
	Verbose         bool
	SaveTheme       func(name string) error
}

const (
	statusWorkers = 4
	statusTimeout = 3 * time.Second
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	index, err := project.Scan(cfg.BaseDir)
	if err != nil {
		return fmt.Errorf("scan projects: %w", err)
	}
	events.App.Rescan(cfg.BaseDir, len(index.Categories()), index.Len())

	store, err := history.Load(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	cache := gitstatus.NewCache(statusWorkers, statusTimeout, nil)
	defer cache.Stop()

	var watcher *project.Watcher
	if cfg.Watch {
		watcher, err = project.NewWatcher(cfg.BaseDir)
		if err != nil {
			// Watching is best effort. The UI still offers manual refresh.
			events.App.WatchError(err)
		} else {
			defer watcher.Stop()
		}
	}

	model := ui.NewModel(ui.Options{
		Index:      index,
		History:    store,
		Status:     cache,
		Watcher:    watcher,
		Launcher:   launcher.New(cfg.IdeaPath, cfg.TerminalCommand),
		BaseDir:    cfg.BaseDir,
		Theme:      cfg.Theme,
		SaveTheme:  cfg.SaveTheme,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
