package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ideatui/idea-tui/internal/logging/events"
	"github.com/ideatui/idea-tui/internal/menu"
	"github.com/ideatui/idea-tui/internal/theme"
	"github.com/ideatui/idea-tui/internal/ui/command"
	uistate "github.com/ideatui/idea-tui/internal/ui/state"
)

// handleEscapeKey clears an active search, otherwise jumps straight back
// to the main menu regardless of depth.
func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.Searching {
		before := current.FilterCursorPos()
		current.ClearFilter()
		m.noteFilterCursorChange(current, before)
		events.Filter.Cleared(current.ID)
		m.syncViewport(current)
		return nil
	}
	if len(m.stack) <= 1 {
		return nil
	}
	root := m.stack[0]
	m.stack = []*level{root}
	if root.LastCursor >= 0 && root.LastCursor < len(root.Items) {
		root.Cursor = root.LastCursor
		root.LastCursor = -1
	}
	m.syncViewport(root)
	m.errMsg = ""
	m.forceClearInfo()
	events.UI.ViewPop(root.ID, len(m.stack))
	return nil
}

// handleBackspaceKey pops a single level. Popping the main menu is a
// no-op.
func (m *Model) handleBackspaceKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil || len(m.stack) <= 1 {
		return nil
	}
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	if parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Cursor = parent.LastCursor
		} else if idx := parent.IndexOf(current.ID); idx >= 0 {
			parent.Cursor = idx
		} else if len(parent.Items) > 0 {
			parent.Cursor = len(parent.Items) - 1
		}
		parent.LastCursor = -1
		m.syncViewport(parent)
	}
	m.errMsg = ""
	m.forceClearInfo()
	events.UI.ViewPop(parent.ID, len(m.stack))
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.Searching && strings.TrimSpace(current.Filter) != "" && isProjectLevel(current.ID) {
		return m.freezeSearchResults(current)
	}
	if len(current.Items) == 0 {
		return nil
	}
	item, ok := current.CurrentItem()
	if !ok {
		return nil
	}
	ctx := m.menuContext()
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	if current.Searching {
		before := current.FilterCursorPos()
		current.ClearFilter()
		m.noteFilterCursorChange(current, before)
	}

	if isProjectLevel(current.ID) {
		m.pendingLaunch = &item
		m.mode = ModeConfirm
		return nil
	}

	switch current.ID {
	case menu.IDOpen:
		category := strings.TrimPrefix(item.ID, menu.IDOpen+":")
		current.LastCursor = current.Cursor
		m.beginLoad(item.ID, item.Label)
		return m.loadMenuCmd(item.ID, item.Label, func(ctx menu.Context) ([]menu.Item, error) {
			return menu.ProjectItems(ctx, category)
		})
	case menu.IDClone:
		m.cloneDest = item.Path
		m.cloneCategory = item.Label
		m.cloneInput.SetValue("")
		m.mode = ModeCloneInput
		return m.cloneInput.Focus()
	case menu.IDTheme:
		return m.applyTheme(strings.TrimPrefix(item.ID, menu.IDTheme+":"))
	}

	node := current.Node
	if node == nil {
		node, _ = m.registry.Find(current.ID)
	}
	if node != nil {
		if child, ok := node.Children[item.ID]; ok {
			if child.Loader != nil {
				current.LastCursor = current.Cursor
				m.beginLoad(child.ID, item.Label)
				return m.loadMenuCmd(child.ID, item.Label, child.Loader)
			}
			if child.Action != nil {
				m.beginLoad(child.ID, item.Label)
				return m.bus.Execute(ctx, command.Request{ID: child.ID, Label: item.Label, Handler: child.Action, Item: item})
			}
		}
		if node.Action != nil {
			m.beginLoad(node.ID, item.Label)
			return m.bus.Execute(ctx, command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
		}
	}
	m.setInfo(fmt.Sprintf("Selected %s (no action defined yet)", item.Label))
	return nil
}

func (m *Model) beginLoad(id, label string) {
	m.loading = true
	m.pendingID = id
	m.pendingLabel = label
	m.errMsg = ""
	m.forceClearInfo()
}

// freezeSearchResults pushes the current matches as their own level so
// the user can browse them while the source level keeps its full list.
func (m *Model) freezeSearchResults(current *level) tea.Cmd {
	query := strings.TrimSpace(current.Filter)
	frozen := uistate.CloneItems(current.Items)
	before := current.FilterCursorPos()
	current.LastCursor = current.Cursor
	current.ClearFilter()
	m.noteFilterCursorChange(current, before)
	lvl := newLevel("search:"+query, fmt.Sprintf("Search %q", query), frozen, current.Node)
	lvl.Cursor = 0
	m.syncViewport(lvl)
	m.stack = append(m.stack, lvl)
	events.UI.SearchFrozen(current.ID, query, len(frozen))
	if len(frozen) == 0 {
		m.setInfo(fmt.Sprintf("No matches for %q", query))
	}
	return m.requestStatuses(frozen)
}

func (m *Model) applyTheme(name string) tea.Cmd {
	m.styles = theme.Load(name)
	if m.styles.Cursor != nil {
		m.filterCursor.Style = m.styles.Cursor.Copy()
	}
	if m.styles.Filter != nil {
		m.filterCursor.TextStyle = m.styles.Filter.Copy()
	}
	events.UI.ThemeChange(m.styles.Name)
	if m.saveTheme != nil {
		if err := m.saveTheme(m.styles.Name); err != nil {
			m.errMsg = err.Error()
			return nil
		}
	}
	m.setInfo(fmt.Sprintf("Theme set to %s", m.styles.Name))
	return nil
}

func (m *Model) toggleFavorite() {
	current := m.currentLevel()
	if current == nil {
		return
	}
	item, ok := current.CurrentItem()
	if !ok || item.Path == "" {
		return
	}
	nowFavorite := m.history.ToggleFavorite(item.Path)
	events.UI.FavoriteToggle(item.Path, nowFavorite)
	if nowFavorite {
		m.setInfo(fmt.Sprintf("Added %s to favorites", item.Label))
	} else {
		m.setInfo(fmt.Sprintf("Removed %s from favorites", item.Label))
	}
	if lvl := m.findLevelByID(menu.IDFavorites); lvl != nil {
		items, err := menu.FavoriteItems(m.menuContext())
		if err != nil {
			items = nil
		}
		lvl.UpdateItems(items)
		m.syncViewport(lvl)
	}
}

func (m *Model) openTerminal() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.CurrentItem()
	if !ok || item.Path == "" {
		return nil
	}
	m.beginLoad("terminal", item.Label)
	return m.bus.Execute(m.menuContext(), command.Request{
		ID:      "terminal",
		Label:   item.Label,
		Handler: menu.TerminalAction,
		Item:    item,
	})
}

// refreshStatuses drops and re-requests the git status of every project
// row on the current level.
func (m *Model) refreshStatuses() tea.Cmd {
	current := m.currentLevel()
	if current == nil || !isProjectLevel(current.ID) {
		return nil
	}
	for _, item := range current.Full {
		if item.Path == "" {
			continue
		}
		m.statuses.Drop(item.Path)
		if m.cache != nil {
			m.cache.Invalidate(item.Path)
		}
	}
	cmd := m.requestStatuses(current.Full)
	m.setInfo("Status refreshed!")
	return cmd
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorUp() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorDown() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(keyMsg)
	case ModeCloneInput:
		return m.handleCloneInputKey(keyMsg)
	case ModeHelp:
		m.mode = ModeMenu
		return nil
	}

	current := m.currentLevel()
	if current != nil && current.Searching {
		if handled, cmd := m.handleTextInput(keyMsg); handled {
			return cmd
		}
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter", "right", "l":
		return m.handleEnterKey()
	case "backspace", "left", "h":
		return m.handleBackspaceKey()
	case "/":
		// The main menu and theme list are short enough to not search.
		if current != nil && current.ID != menu.IDRoot && current.ID != menu.IDTheme {
			current.Searching = true
			m.filterCursorDirty = true
		}
		return nil
	case "f":
		m.toggleFavorite()
		return nil
	case "t":
		return m.openTerminal()
	case "r":
		return m.refreshStatuses()
	case "?":
		m.mode = ModeHelp
		return nil
	case "up", "k":
		m.moveCursorUp()
	case "down", "j":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return m.ensurePreviewForLevel(current)
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	node, _ := m.registry.Find(update.id)
	lvl := newLevel(update.id, update.title, update.items, node)
	lvl.Cursor = 0
	m.syncViewport(lvl)
	m.stack = append(m.stack, lvl)
	if len(lvl.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	if isProjectLevel(lvl.ID) {
		return tea.Batch(m.requestStatuses(lvl.Items), m.ensurePreviewForLevel(lvl))
	}
	return nil
}
