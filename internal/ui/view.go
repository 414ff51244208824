package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/ideatui/idea-tui/internal/format/table"
	"github.com/ideatui/idea-tui/internal/menu"
)

const (
	previewPanelMinWidth = 40  // minimum cols for the preview panel; below this no split
	previewPanelFraction = 0.5 // fraction of total width given to the preview panel
)

var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerHint         = "↑/↓ move  enter open  / search  f favorite  t terminal  r refresh  backspace back  esc main menu  ? help  q quit"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// hasSidePreview reports whether the current level should be rendered
// with the project details panel on the right.
func (m *Model) hasSidePreview() bool {
	current := m.currentLevel()
	if current == nil || !isProjectLevel(current.ID) {
		return false
	}
	return m.previewPanelWidth() > 0
}

func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	switch m.mode {
	case ModeConfirm:
		return m.viewConfirm(header)
	case ModeCloneInput:
		return m.viewCloneInput(header)
	case ModeHelp:
		return m.viewHelp(header)
	}
	if m.hasSidePreview() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

// itemDisplays renders each row of the level as aligned columns:
// favorite marker, name, language, git status.
func (m *Model) itemDisplays(current *level) []string {
	if !isProjectLevel(current.ID) {
		out := make([]string, len(current.Items))
		for i, item := range current.Items {
			out[i] = item.Label
		}
		return out
	}
	rows := make([][]string, len(current.Items))
	for i, item := range current.Items {
		rows[i] = []string{
			m.favoriteMark(item),
			item.Label,
			item.Language,
			m.statusCell(item),
		}
	}
	return table.Format(rows, []table.Alignment{
		table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft,
	})
}

func (m *Model) favoriteMark(item menu.Item) string {
	if item.Path != "" && m.history.IsFavorite(item.Path) {
		return "★"
	}
	return " "
}

func (m *Model) statusCell(item menu.Item) string {
	if item.Path == "" {
		return ""
	}
	st, ok := m.statuses.Get(item.Path)
	if !ok {
		return "…"
	}
	if !st.Available {
		return "-"
	}
	if st.Dirty {
		return st.Branch + " ●"
	}
	return st.Branch + " ✓"
}

func (m *Model) menuLines(current *level, width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	if current == nil {
		return lines
	}
	m.syncViewport(current)
	displays := m.itemDisplays(current)
	start := 0
	end := len(current.Items)
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(current.Items) > maxItems {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(current.Items) {
			start = len(current.Items) - maxItems
			if start < 0 {
				start = 0
			}
			current.ViewportOffset = start
		}
		end = start + maxItems
	}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		return append(lines, styledLine{text: msg, style: m.styles.Info})
	}
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(displays[idx], idx, current, width))
	}
	return lines
}

func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: m.styles.Header})
	}
	lines = append(lines, m.menuLines(m.currentLevel(), m.width)...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: m.styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: m.styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, m.bottomBarLines()...)
	return renderLines(lines)
}

func (m *Model) viewSideBySide(header string) string {
	menuW := m.menuColumnWidth()
	prevW := m.previewPanelWidth()

	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: m.styles.Header})
	}
	contentLines = append(contentLines, m.menuLines(m.currentLevel(), menuW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: m.styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: footerHint, style: m.styles.Footer})
	}

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}

	contentLines = applyWidth(contentLines, menuW)
	leftStr := renderLines(contentLines)

	// Pad every rendered row to exactly menuW visible columns so
	// JoinHorizontal keeps the panel flush to the right edge.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderPreviewPanel(prevW, panelH)

	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)
	bottomStr := renderLines(m.bottomBarLines())
	return topSection + "\n" + bottomStr
}

func (m *Model) bottomBarLines() []styledLine {
	var statusLine styledLine
	switch {
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: m.styles.Error}
	case m.loading:
		text := "Loading…"
		if m.pendingLabel != "" {
			text = fmt.Sprintf("Loading %s…", m.pendingLabel)
		}
		statusLine = styledLine{text: text, style: m.styles.Loading}
	}
	var promptLine styledLine
	if current := m.currentLevel(); current != nil && current.Searching {
		promptText, _ := m.filterPrompt()
		promptLine = styledLine{text: promptText}
	}
	return applyWidth([]styledLine{statusLine, promptLine}, m.width)
}

// buildItemLine constructs a single styledLine for a menu item. When
// width > 0 the text is padded so the selected row's background spans
// the container.
func (m *Model) buildItemLine(display string, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := m.styles.Item
	indicatorStyle := m.styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = m.styles.SelectedItemIndicator
		lineStyle = m.styles.SelectedItem
	}
	fullText := indicator + " " + display
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// renderPreviewPanel draws the bordered details box with exactly height
// rows and totalWidth columns.
func (m *Model) renderPreviewPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "Project"
	var contentLines []string
	var errLine string

	preview := m.activePreview()
	if preview != nil {
		if lbl := strings.TrimSpace(preview.label); lbl != "" {
			titleLabel = lbl
		}
		contentLines = append(contentLines, m.previewDetailLines(preview.path)...)
		switch {
		case preview.err != "":
			errLine = preview.err
		case preview.loading:
			contentLines = append(contentLines, "", "Loading README…")
		case len(preview.lines) > 0:
			contentLines = append(contentLines, "")
			contentLines = append(contentLines, preview.lines...)
		}
	}

	titleSeg := " " + titleLabel + " "
	dashes := totalWidth - 4 - len([]rune(titleSeg))
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := previewBorderStyle.Render(tlc+hz) +
		m.styles.PreviewTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)+hz+trc)

	bottomLine := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	bodyStyle := m.styles.PreviewBody
	if errLine != "" {
		bodyStyle = m.styles.PreviewError
		contentLines = append(contentLines, "", errLine)
	}

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content = content + strings.Repeat(" ", innerW-w)
		}
		styledContent := content
		// Detail lines may carry their own colours; re-styling them
		// would reset mid-line.
		if bodyStyle != nil && !strings.Contains(content, "\x1b") {
			styledContent = bodyStyle.Render(content)
		}
		rows = append(rows, previewBorderStyle.Render(vt)+styledContent+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) viewConfirm(header string) string {
	lines := make([]styledLine, 0, 8)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: m.styles.Header})
		lines = append(lines, styledLine{})
	}
	name := ""
	path := ""
	if m.pendingLaunch != nil {
		name = m.pendingLaunch.Label
		path = m.pendingLaunch.Path
	}
	body := fmt.Sprintf("Open %s in IntelliJ IDEA?\n%s\n\n[y] open    [n] cancel", name, path)
	var borderColor lipgloss.TerminalColor = lipgloss.Color("3")
	if m.styles.ConfirmBorder != nil {
		borderColor = m.styles.ConfirmBorder.GetForeground()
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 2).
		Render(body)
	out := renderLines(applyWidth(lines, m.width))
	if out != "" {
		out += "\n"
	}
	return out + box
}

func (m *Model) viewCloneInput(header string) string {
	lines := make([]styledLine, 0, 8)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: m.styles.Header})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{
		text:  fmt.Sprintf("Clone repository into %s", m.cloneCategory),
		style: m.styles.Info,
	})
	lines = append(lines, styledLine{text: m.cloneInput.View()})
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "enter clone  esc cancel", style: m.styles.Footer})
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) viewHelp(header string) string {
	rows := [][]string{
		{"↑/↓, k/j", "move the cursor"},
		{"enter", "open the selected entry"},
		{"/", "search within the current list"},
		{"f", "toggle favorite for the selected project"},
		{"t", "open a terminal in the selected project"},
		{"r", "refresh git status for the visible projects"},
		{"backspace", "go back one view"},
		{"esc", "clear search, or jump to the main menu"},
		{"q, ctrl+c", "quit"},
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	lines := make([]styledLine, 0, len(formatted)+4)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: m.styles.Header})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "Keys", style: m.styles.PreviewTitle})
	for _, row := range formatted {
		lines = append(lines, styledLine{text: row, style: m.styles.Info})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "press any key to go back", style: m.styles.Footer})
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	depth := len(m.stack)
	if depth == 0 {
		return nil
	}
	segments := make([]string, 0, depth)
	segments = append(segments, rootTitle)
	for i := 1; i < depth; i++ {
		segment := headerSegmentForLevel(m.stack[i])
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

func headerSegmentForLevel(l *level) string {
	if l == nil {
		return ""
	}
	candidate := strings.TrimSpace(l.Title)
	if candidate == "" {
		candidate = strings.TrimSpace(l.ID)
		if idx := strings.LastIndex(candidate, ":"); idx >= 0 {
			candidate = candidate[idx+1:]
		}
	}
	return strings.TrimSpace(candidate)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: status line + search prompt
	if header := m.menuHeader(); header != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{
			text:          truncateText(line.text, width),
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
