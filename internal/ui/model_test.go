package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ideatui/idea-tui/internal/gitstatus"
	"github.com/ideatui/idea-tui/internal/history"
	"github.com/ideatui/idea-tui/internal/menu"
	"github.com/ideatui/idea-tui/internal/project"
)

type fakeLauncher struct {
	ideDirs      []string
	terminalDirs []string
	err          error
}

func (f *fakeLauncher) OpenIDE(dir string) error {
	f.ideDirs = append(f.ideDirs, dir)
	return f.err
}

func (f *fakeLauncher) OpenTerminal(dir string) error {
	f.terminalDirs = append(f.terminalDirs, dir)
	return f.err
}

// newTestTree builds base/{java/gamma, rust/{alpha,beta}} with language
// markers and a README for alpha.
func newTestTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	mustWrite := func(path, content string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite(filepath.Join(base, "rust", "alpha", "Cargo.toml"), "[package]\n")
	mustWrite(filepath.Join(base, "rust", "alpha", "README.md"), "# alpha\n\nA test project.\n")
	mustWrite(filepath.Join(base, "rust", "beta", "Cargo.toml"), "[package]\n")
	mustWrite(filepath.Join(base, "java", "gamma", "pom.xml"), "<project/>\n")
	return base
}

func newTestModel(t *testing.T) (*Model, *fakeLauncher) {
	t.Helper()
	base := newTestTree(t)
	index, err := project.Scan(base)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	store, err := history.Load(t.TempDir())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	launch := &fakeLauncher{}
	m := NewModel(Options{
		Index:      index,
		History:    store,
		Launcher:   launch,
		BaseDir:    base,
		Width:      100,
		Height:     30,
		ShowFooter: true,
		Verbose:    true,
	})
	return m, launch
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func statusResult(path, branch string, dirty bool) gitstatus.Result {
	return gitstatus.Result{
		Path:   path,
		Status: gitstatus.Status{Branch: branch, Dirty: dirty, Available: true},
	}
}

func TestNewModelStartsAtMainMenu(t *testing.T) {
	m, _ := newTestModel(t)
	current := m.currentLevel()
	if current == nil || current.ID != menu.IDRoot {
		t.Fatalf("expected root level, got %+v", current)
	}
	if len(current.Items) != 6 {
		t.Fatalf("expected 6 root items, got %d", len(current.Items))
	}
	if current.Items[0].Label != "Favorites" {
		t.Fatalf("expected Favorites first, got %q", current.Items[0].Label)
	}
	if current.Cursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", current.Cursor)
	}
}

func TestHandlerForDispatchesPointerAndValue(t *testing.T) {
	m, _ := newTestModel(t)
	if m.handlerFor(tea.KeyMsg{}) == nil {
		t.Fatalf("expected handler for tea.KeyMsg")
	}
	if m.handlerFor(categoryLoadedMsg{}) == nil {
		t.Fatalf("expected handler for categoryLoadedMsg")
	}
	if m.handlerFor(struct{ unknown int }{}) != nil {
		t.Fatalf("expected no handler for unknown message type")
	}
}

func TestIsProjectLevel(t *testing.T) {
	cases := map[string]bool{
		menu.IDRoot:      false,
		menu.IDFavorites: true,
		menu.IDRecent:    true,
		"open:rust":      true,
		"search:alpha":   true,
		menu.IDOpen:      false,
		menu.IDClone:     false,
		menu.IDTheme:     false,
	}
	for id, want := range cases {
		if got := isProjectLevel(id); got != want {
			t.Errorf("isProjectLevel(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestIndexAdapterRoundTrip(t *testing.T) {
	m, _ := newTestModel(t)
	ctx := m.menuContext()
	cats := ctx.Index.Categories()
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %v", cats)
	}
	projects := ctx.Index.Projects("rust")
	if len(projects) != 2 {
		t.Fatalf("expected 2 rust projects, got %d", len(projects))
	}
	if projects[0].Language != "Rust" {
		t.Fatalf("expected Rust language, got %q", projects[0].Language)
	}
	entry, ok := ctx.Index.Lookup(projects[0].Path)
	if !ok || entry.Name != projects[0].Name {
		t.Fatalf("lookup mismatch: %+v", entry)
	}
}

func TestActionResultRecordsRecent(t *testing.T) {
	m, _ := newTestModel(t)
	path := filepath.Join(m.baseDir, "rust", "alpha")
	m.handleActionResultMsg(menu.ActionResult{Info: "Project alpha opened!", Opened: path})
	recents := m.history.Recents()
	if len(recents) != 1 || recents[0] != path {
		t.Fatalf("expected %s in recents, got %v", path, recents)
	}
	if m.infoMsg != "Project alpha opened!" {
		t.Fatalf("expected info message, got %q", m.infoMsg)
	}
}

func TestActionResultErrorSetsErrMsg(t *testing.T) {
	m, _ := newTestModel(t)
	m.loading = true
	m.handleActionResultMsg(menu.ActionResult{Err: os.ErrPermission})
	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	if m.errMsg == "" {
		t.Fatalf("expected error message set")
	}
}

func TestStatusEventUpdatesStore(t *testing.T) {
	m, _ := newTestModel(t)
	path := filepath.Join(m.baseDir, "rust", "alpha")
	m.handleStatusEventMsg(statusEventMsg{result: statusResult(path, "main", false)})
	st, ok := m.statuses.Get(path)
	if !ok {
		t.Fatalf("expected status stored")
	}
	if st.Branch != "main" || st.Dirty {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestIndexReloadRefreshesCategoryLevel(t *testing.T) {
	m, _ := newTestModel(t)
	lvl := newLevel("open:rust", "rust", nil, nil)
	m.stack = append(m.stack, lvl)

	index, err := project.Scan(m.baseDir)
	if err != nil {
		t.Fatal(err)
	}
	m.handleIndexLoadedMsg(indexLoadedMsg{index: index})
	if len(lvl.Items) != 2 {
		t.Fatalf("expected rust level refreshed with 2 items, got %d", len(lvl.Items))
	}
}
