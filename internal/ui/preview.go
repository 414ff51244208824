package ui

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// previewReadmeLines caps how much of a README is loaded for display.
const previewReadmeLines = 16

var readmeNames = []string{"README.md", "README", "readme.md", "Readme.md"}

// previewData holds the lazily loaded details for one project row.
type previewData struct {
	path    string
	label   string
	lines   []string
	err     string
	loading bool
}

type previewLoadedMsg struct {
	path  string
	lines []string
	err   string
}

// ensurePreviewForLevel kicks off a README load for the project under
// the cursor, once per path.
func (m *Model) ensurePreviewForLevel(lvl *level) tea.Cmd {
	if lvl == nil || !isProjectLevel(lvl.ID) {
		return nil
	}
	item, ok := lvl.CurrentItem()
	if !ok || item.Path == "" {
		return nil
	}
	if _, seen := m.previews[item.Path]; seen {
		return nil
	}
	m.previews[item.Path] = &previewData{path: item.Path, label: item.Label, loading: true}
	return loadPreviewCmd(item.Path)
}

func loadPreviewCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := readReadmeHead(path, previewReadmeLines)
		if err != nil {
			return previewLoadedMsg{path: path, err: err.Error()}
		}
		return previewLoadedMsg{path: path, lines: lines}
	}
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	preview, ok := m.previews[update.path]
	if !ok {
		return nil
	}
	preview.loading = false
	preview.lines = update.lines
	preview.err = update.err
	return nil
}

// activePreview returns the preview for the project under the cursor,
// if the current level shows projects.
func (m *Model) activePreview() *previewData {
	current := m.currentLevel()
	if current == nil || !isProjectLevel(current.ID) {
		return nil
	}
	item, ok := current.CurrentItem()
	if !ok || item.Path == "" {
		return nil
	}
	return m.previews[item.Path]
}

// previewDetailLines builds the metadata block shown above the README
// excerpt.
func (m *Model) previewDetailLines(path string) []string {
	entry, ok := m.index.Lookup(path)
	name := filepath.Base(path)
	category := filepath.Base(filepath.Dir(path))
	language := ""
	if ok {
		name = entry.Name
		category = entry.Category
		language = entry.Language
	}
	styled := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	lines := []string{
		fmt.Sprintf("Name:     %s", name),
		fmt.Sprintf("Category: %s", category),
		fmt.Sprintf("Path:     %s", path),
	}
	if language != "" {
		lines = append(lines, fmt.Sprintf("Language: %s", styled(m.styles.Language, language)))
	}
	if st, ok := m.statuses.Get(path); ok {
		if st.Available {
			state := styled(m.styles.GitClean, "clean")
			if st.Dirty {
				state = styled(m.styles.GitDirty, "dirty")
			}
			lines = append(lines, fmt.Sprintf("Git:      %s (%s)", styled(m.styles.GitBranch, st.Branch), state))
		} else {
			lines = append(lines, fmt.Sprintf("Git:      %s", styled(m.styles.NoGit, "unavailable")))
		}
	} else {
		lines = append(lines, "Git:      …")
	}
	if m.history.IsFavorite(path) {
		lines = append(lines, fmt.Sprintf("Favorite: %s", styled(m.styles.Favorite, "★")))
	}
	return lines
}

func readReadmeHead(dir string, max int) ([]string, error) {
	var lastErr error
	for _, name := range readmeNames {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			if !os.IsNotExist(err) {
				lastErr = err
			}
			continue
		}
		defer f.Close()
		lines := make([]string, 0, max)
		scanner := bufio.NewScanner(f)
		for scanner.Scan() && len(lines) < max {
			lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return lines, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}
