package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ideatui/idea-tui/internal/menu"
	"github.com/ideatui/idea-tui/internal/ui/command"
)

// handleConfirmKey resolves the launch confirmation dialog. Enter and y
// launch; n, esc and backspace cancel back to the list.
func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "y", "Y", "enter":
		item := m.pendingLaunch
		m.pendingLaunch = nil
		m.mode = ModeMenu
		if item == nil {
			return nil
		}
		m.beginLoad("launch", item.Label)
		return m.bus.Execute(m.menuContext(), command.Request{
			ID:      "launch",
			Label:   item.Label,
			Handler: menu.LaunchAction,
			Item:    *item,
		})
	case "n", "N", "esc", "backspace":
		m.pendingLaunch = nil
		m.mode = ModeMenu
		return nil
	}
	return nil
}

// handleCloneInputKey feeds keys to the URL input until the user
// submits or cancels.
func (m *Model) handleCloneInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.mode = ModeMenu
		m.cloneInput.Blur()
		m.cloneInput.SetValue("")
		return nil
	case "enter":
		url := strings.TrimSpace(m.cloneInput.Value())
		if url == "" {
			return nil
		}
		m.mode = ModeMenu
		m.cloneInput.Blur()
		m.cloneInput.SetValue("")
		m.beginLoad("clone", url)
		return menu.CloneCommand(m.menuContext(), url, m.cloneDest)
	}
	var cmd tea.Cmd
	m.cloneInput, cmd = m.cloneInput.Update(msg)
	return cmd
}
