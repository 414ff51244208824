package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ideatui/idea-tui/internal/gitstatus"
	"github.com/ideatui/idea-tui/internal/history"
	"github.com/ideatui/idea-tui/internal/menu"
	"github.com/ideatui/idea-tui/internal/project"
	"github.com/ideatui/idea-tui/internal/state"
	"github.com/ideatui/idea-tui/internal/theme"
	"github.com/ideatui/idea-tui/internal/ui/command"
	uistate "github.com/ideatui/idea-tui/internal/ui/state"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeConfirm
	ModeCloneInput
	ModeHelp
)

const (
	menuHeaderSeparator = " → "
	rootTitle           = "IDEA Projects"
)

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Options bundles everything the model needs from the application
// bootstrap.
type Options struct {
	Index      *project.Index
	History    *history.Store
	Status     *gitstatus.Cache
	Watcher    *project.Watcher
	Launcher   menu.Launcher
	BaseDir    string
	Theme      string
	SaveTheme  func(name string) error
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model for the project browser.
type Model struct {
	stack        []*level
	loading      bool
	pendingID    string
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	verbose      bool

	styles *theme.Styles

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	registry *menu.Registry
	bus      *command.Bus
	mode     Mode

	index    *project.Index
	history  *history.Store
	statuses state.StatusStore
	cache    *gitstatus.Cache
	watcher  *project.Watcher
	launcher menu.Launcher
	baseDir  string

	saveTheme func(name string) error

	pendingLaunch *menu.Item
	cloneDest     string
	cloneCategory string
	cloneInput    textinput.Model

	previews map[string]*previewData
}

// NewModel initialises the UI state with the main menu and configuration.
func NewModel(opts Options) *Model {
	registry := menu.BuildRegistry()
	root := newLevel(menu.IDRoot, rootTitle, menu.RootItems(), registry.Root())
	root.Cursor = 0
	m := &Model{
		stack:      []*level{root},
		registry:   registry,
		bus:        command.New(),
		mode:       ModeMenu,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		styles:     theme.Load(opts.Theme),
		index:      opts.Index,
		history:    opts.History,
		statuses:   state.NewStatusStore(),
		cache:      opts.Status,
		watcher:    opts.Watcher,
		launcher:   opts.Launcher,
		baseDir:    opts.BaseDir,
		saveTheme:  opts.SaveTheme,
		previews:   make(map[string]*previewData),
	}
	m.syncViewport(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if m.styles.Cursor != nil {
		c.Style = m.styles.Cursor.Copy()
	}
	if m.styles.Filter != nil {
		c.TextStyle = m.styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c

	input := textinput.New()
	input.Placeholder = "https://github.com/owner/repo.git"
	input.Prompt = "URL: "
	if m.styles.FilterPrompt != nil {
		input.PromptStyle = *m.styles.FilterPrompt
	}
	m.cloneInput = input

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.cache != nil {
		cmds = append(cmds, waitForStatusEvent(m.cache))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForWatchEvent(m.watcher))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(categoryLoadedMsg{}): m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(statusEventMsg{}):    m.handleStatusEventMsg,
		reflect.TypeOf(statusDoneMsg{}):     m.handleStatusDoneMsg,
		reflect.TypeOf(watchEventMsg{}):     m.handleWatchEventMsg,
		reflect.TypeOf(watchDoneMsg{}):      m.handleWatchDoneMsg,
		reflect.TypeOf(indexLoadedMsg{}):    m.handleIndexLoadedMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) findLevelByID(id string) *level {
	for _, lvl := range m.stack {
		if lvl.ID == id {
			return lvl
		}
	}
	return nil
}

// indexAdapter narrows *project.Index to the menu loaders' view of it.
type indexAdapter struct {
	idx *project.Index
}

func (a indexAdapter) Categories() []string {
	return a.idx.Categories()
}

func (a indexAdapter) Projects(category string) []menu.ProjectEntry {
	entries := a.idx.Projects(category)
	out := make([]menu.ProjectEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, menu.ProjectEntry(e))
	}
	return out
}

func (a indexAdapter) Lookup(path string) (menu.ProjectEntry, bool) {
	entry, ok := a.idx.Lookup(path)
	return menu.ProjectEntry(entry), ok
}

func (m *Model) menuContext() menu.Context {
	return menu.Context{
		Index:    indexAdapter{idx: m.index},
		History:  m.history,
		Launcher: m.launcher,
		BaseDir:  m.baseDir,
	}
}

// isProjectLevel reports whether the given level lists project rows.
func isProjectLevel(id string) bool {
	if id == menu.IDFavorites || id == menu.IDRecent {
		return true
	}
	return strings.HasPrefix(id, menu.IDOpen+":") || strings.HasPrefix(id, "search:")
}
