package menu

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ideatui/idea-tui/internal/launcher"
)

// Item represents a selectable menu entry. Path is set only for rows
// that stand for a project directory on disk.
type Item struct {
	ID       string
	Label    string
	Path     string
	Language string
}

// Launcher abstracts process spawning so tests can capture launches.
type Launcher interface {
	OpenIDE(dir string) error
	OpenTerminal(dir string) error
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Index    ProjectIndex
	History  HistoryStore
	Launcher Launcher
	BaseDir  string
}

// ProjectIndex is the slice of the scanner the menus need.
type ProjectIndex interface {
	Categories() []string
	Projects(category string) []ProjectEntry
	Lookup(path string) (ProjectEntry, bool)
}

// HistoryStore is the slice of the favorites/recents store the menus
// need.
type HistoryStore interface {
	Favorites() []string
	Recents() []string
	IsFavorite(path string) bool
}

// ProjectEntry mirrors a scanned project for menu consumption.
type ProjectEntry struct {
	Name     string
	Path     string
	Category string
	Language string
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
// Opened is the path of a project that should be recorded as recently
// opened.
type ActionResult struct {
	Info   string
	Err    error
	Opened string
}

// Root item identifiers. Submenu identifiers derive from these with a
// colon-separated suffix, e.g. "open:rust".
const (
	IDRoot      = "root"
	IDFavorites = "favorites"
	IDRecent    = "recent"
	IDOpen      = "open"
	IDClone     = "clone"
	IDIde       = "ide"
	IDTheme     = "theme"
)

// RootItems returns the top-level menu entries.
func RootItems() []Item {
	return []Item{
		{ID: IDFavorites, Label: "Favorites"},
		{ID: IDRecent, Label: "Recent Projects"},
		{ID: IDOpen, Label: "Open Existing Project"},
		{ID: IDClone, Label: "Clone Repository"},
		{ID: IDIde, Label: "Open IntelliJ IDEA"},
		{ID: IDTheme, Label: "Choose Theme"},
	}
}

// CategoryLoaders lists submenu loaders keyed by root item ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		IDFavorites: loadFavoritesMenu,
		IDRecent:    loadRecentMenu,
		IDOpen:      loadCategoryMenu,
		IDClone:     loadCloneCategoryMenu,
		IDTheme:     loadThemeMenu,
	}
}

// ActionHandlers maps menu identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		IDIde: IdeAction,
	}
}

// IdeAction opens the IDE without a project, landing on its welcome
// screen.
func IdeAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg {
		if err := ctx.Launcher.OpenIDE(""); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: "IntelliJ IDEA launched!"}
	}
}

// LaunchAction opens the IDE on the item's project directory.
func LaunchAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		if err := ctx.Launcher.OpenIDE(item.Path); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{
			Info:   fmt.Sprintf("Project %s opened!", item.Label),
			Opened: item.Path,
		}
	}
}

// TerminalAction opens the configured terminal in the item's directory.
func TerminalAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		if err := ctx.Launcher.OpenTerminal(item.Path); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Terminal opened in %s", item.Label)}
	}
}

// CloneCommand clones url into destDir and opens the result in the IDE.
func CloneCommand(ctx Context, url, destDir string) tea.Cmd {
	return func() tea.Msg {
		dest, err := launcher.Clone(context.Background(), url, destDir)
		if err != nil {
			return ActionResult{Err: err}
		}
		if err := ctx.Launcher.OpenIDE(dest); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{
			Info:   fmt.Sprintf("Cloned %s!", filepath.Base(dest)),
			Opened: dest,
		}
	}
}
