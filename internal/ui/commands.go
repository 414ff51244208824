package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ideatui/idea-tui/internal/gitstatus"
	"github.com/ideatui/idea-tui/internal/logging"
	"github.com/ideatui/idea-tui/internal/logging/events"
	"github.com/ideatui/idea-tui/internal/menu"
	"github.com/ideatui/idea-tui/internal/project"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Opened != "" {
		m.history.RecordOpened(result.Opened)
		if lvl := m.findLevelByID(menu.IDRecent); lvl != nil {
			if items, err := menu.RecentItems(m.menuContext()); err == nil {
				lvl.UpdateItems(items)
				m.syncViewport(lvl)
			}
		}
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

func (m *Model) loadMenuCmd(id, title string, loader menu.Loader) tea.Cmd {
	ctx := m.menuContext()
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

// requestStatuses enqueues git status computations for every project
// row and seeds already-known results so rows render without waiting
// for the next completion event.
func (m *Model) requestStatuses(items []menu.Item) tea.Cmd {
	if m.cache == nil {
		return nil
	}
	for _, item := range items {
		if item.Path == "" {
			continue
		}
		if st, ok := m.cache.Get(item.Path); ok {
			m.statuses.Set(item.Path, st)
			continue
		}
		m.cache.Request(item.Path)
	}
	return nil
}

func waitForStatusEvent(c *gitstatus.Cache) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-c.Events()
		if !ok {
			return statusDoneMsg{}
		}
		return statusEventMsg{result: r}
	}
}

type statusEventMsg struct {
	result gitstatus.Result
}

type statusDoneMsg struct{}

func (m *Model) handleStatusEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(statusEventMsg)
	if !ok {
		return nil
	}
	m.statuses.Set(eventMsg.result.Path, eventMsg.result.Status)
	// Fold in anything else that completed since the last frame.
	if m.cache != nil {
		for _, r := range m.cache.Poll() {
			m.statuses.Set(r.Path, r.Status)
		}
		return waitForStatusEvent(m.cache)
	}
	return nil
}

func (m *Model) handleStatusDoneMsg(tea.Msg) tea.Cmd {
	m.cache = nil
	return nil
}

func waitForWatchEvent(w *project.Watcher) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-w.Events()
		if !ok {
			return watchDoneMsg{}
		}
		return watchEventMsg{}
	}
}

type watchEventMsg struct{}

type watchDoneMsg struct{}

func (m *Model) handleWatchEventMsg(tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{m.rescanCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForWatchEvent(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWatchDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

func (m *Model) rescanCmd() tea.Cmd {
	baseDir := m.baseDir
	return func() tea.Msg {
		index, err := project.Scan(baseDir)
		if err != nil {
			logging.Error(err)
		}
		return indexLoadedMsg{index: index, err: err}
	}
}

type indexLoadedMsg struct {
	index *project.Index
	err   error
}

// handleIndexLoadedMsg swaps in a fresh scan and refreshes every level
// whose items derive from the directory tree. Status entries are keyed
// by path, so they carry over untouched.
func (m *Model) handleIndexLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(indexLoadedMsg)
	if !ok {
		return nil
	}
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.index = update.index
	events.App.Rescan(m.baseDir, len(m.index.Categories()), m.index.Len())
	ctx := m.menuContext()
	var cmds []tea.Cmd
	for _, lvl := range m.stack {
		var items []menu.Item
		var err error
		switch {
		case lvl.ID == menu.IDFavorites:
			items, err = menu.FavoriteItems(ctx)
		case lvl.ID == menu.IDRecent:
			items, err = menu.RecentItems(ctx)
		case strings.HasPrefix(lvl.ID, menu.IDOpen+":"):
			items, err = menu.ProjectItems(ctx, strings.TrimPrefix(lvl.ID, menu.IDOpen+":"))
		case lvl.ID == menu.IDOpen || lvl.ID == menu.IDClone:
			node, found := m.registry.Find(lvl.ID)
			if !found || node.Loader == nil {
				continue
			}
			items, err = node.Loader(ctx)
		default:
			continue
		}
		if err != nil {
			items = nil
		}
		lvl.UpdateItems(items)
		m.syncViewport(lvl)
		if isProjectLevel(lvl.ID) {
			if cmd := m.requestStatuses(lvl.Items); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
