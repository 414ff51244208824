package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func startSearch(m *Model) *level {
	current := m.currentLevel()
	current.Searching = true
	return current
}

func TestHandleTextInputAppendsRunes(t *testing.T) {
	m, _ := newTestModel(t)
	current := startSearch(m)
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	if !handled {
		t.Fatalf("expected key press to be handled")
	}
	if current.Filter != "abc" {
		t.Fatalf("expected filter 'abc', got %q", current.Filter)
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor at end, got %d", pos)
	}
}

func TestHandleTextInputCursorMovement(t *testing.T) {
	m, _ := newTestModel(t)
	current := startSearch(m)
	current.SetFilter("abc", 3)

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyLeft}); !handled {
		t.Fatalf("expected left arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 2 {
		t.Fatalf("expected cursor at 2 after left, got %d", pos)
	}

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRight}); !handled {
		t.Fatalf("expected right arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor back at 3, got %d", pos)
	}
}

func TestHandleTextInputCtrlUClearsQuery(t *testing.T) {
	m, _ := newTestModel(t)
	current := startSearch(m)
	current.SetFilter("alpha", 5)

	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU})
	if !handled {
		t.Fatalf("expected ctrl+u to be handled")
	}
	if current.Filter != "" {
		t.Fatalf("expected empty filter, got %q", current.Filter)
	}
}

func TestHandleTextInputWordBackspace(t *testing.T) {
	m, _ := newTestModel(t)
	current := startSearch(m)
	current.SetFilter("two words", 9)

	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlW})
	if !handled {
		t.Fatalf("expected ctrl+w to be handled")
	}
	if current.Filter != "two " {
		t.Fatalf("expected 'two ', got %q", current.Filter)
	}
}

func TestHandleTextInputBackspaceFallsThroughWhenEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	startSearch(m)

	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyBackspace})
	if handled {
		t.Fatalf("expected backspace on empty query to fall through")
	}
}

func TestHandleTextInputIgnoredWhileLoading(t *testing.T) {
	m, _ := newTestModel(t)
	startSearch(m)
	m.loading = true

	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if handled {
		t.Fatalf("expected input to be ignored while loading")
	}
}

func TestFilterNarrowsItems(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)
	enterProjectLevel(t, h, "rust")
	current := startSearch(h.Model())

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("BET")})
	if len(current.Items) != 1 || current.Items[0].Label != "beta" {
		t.Fatalf("expected case-insensitive match on beta, got %+v", current.Items)
	}
	if len(current.Full) != 2 {
		t.Fatalf("expected full list retained, got %d", len(current.Full))
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	current := startSearch(m)
	current.SetFilter("", 0)
	prompt, _ := m.filterPrompt()
	if prompt == "" {
		t.Fatalf("expected non-empty prompt")
	}
	if !strings.Contains(prompt, "type to search") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}

func TestCloneInputAcceptsURL(t *testing.T) {
	m, launch := newTestModel(t)
	h := NewHarness(m)

	moveTo(t, h, "Clone Repository")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if got := h.Model().currentLevel().ID; got != "clone" {
		t.Fatalf("expected clone category level, got %s", got)
	}
	moveTo(t, h, "rust")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().mode != ModeCloneInput {
		t.Fatalf("expected clone input mode")
	}

	// The URL input owns plain keys until submit or cancel.
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := h.Model().cloneInput.Value(); got != "x" {
		t.Fatalf("expected input to capture runes, got %q", got)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.Model().mode != ModeMenu {
		t.Fatalf("expected cancel back to menu")
	}
	if h.Model().cloneInput.Value() != "" {
		t.Fatalf("expected input cleared on cancel")
	}
	if len(launch.ideDirs) != 0 {
		t.Fatalf("expected no launch on cancel, got %v", launch.ideDirs)
	}
}

func TestCloneInputEnterRequiresURL(t *testing.T) {
	m, _ := newTestModel(t)
	h := NewHarness(m)

	moveTo(t, h, "Clone Repository")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	moveTo(t, h, "rust")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().mode != ModeCloneInput {
		t.Fatalf("expected empty URL submit to be ignored")
	}
}
