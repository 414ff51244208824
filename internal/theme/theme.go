package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Name string

	Header                *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	Loading               *lipgloss.Style

	GitBranch *lipgloss.Style
	GitClean  *lipgloss.Style
	GitDirty  *lipgloss.Style
	NoGit     *lipgloss.Style
	Favorite  *lipgloss.Style
	Language  *lipgloss.Style

	ConfirmBorder *lipgloss.Style
	PreviewTitle  *lipgloss.Style
	PreviewBody   *lipgloss.Style
	PreviewError  *lipgloss.Style
}

// Palette holds the raw colors a theme is built from.
type Palette struct {
	Border        string
	HeaderText    string
	Highlight     string
	ConfirmBorder string
	GitBranch     string
	GitClean      string
	GitDirty      string
	NoGit         string
	Text          string
	Surface       string
	Error         string
}

// DefaultName is the theme used when the configured name is unknown.
const DefaultName = "Darcula (default)"

// Names lists the selectable themes in menu order.
func Names() []string {
	return []string{
		DefaultName,
		"Catppuccin Mocha",
		"Dracula",
		"Gruvbox",
		"Nord",
		"Solarized Dark",
		"One Dark",
		"Tokyo Night",
		"Everforest",
		"Rose Pine",
		"Ayu Mirage",
	}
}

func palettes() map[string]Palette {
	mocha := catppuccin.Mocha
	return map[string]Palette{
		DefaultName: {
			Border:        "#608a6e",
			HeaderText:    "#a9b7c6",
			Highlight:     "#ffc66d",
			ConfirmBorder: "#cc7832",
			GitBranch:     "#9876aa",
			GitClean:      "#6a8759",
			GitDirty:      "#cc7832",
			NoGit:         "#606366",
			Text:          "#a9b7c6",
			Surface:       "#2b2b2b",
			Error:         "#ff6b68",
		},
		"Catppuccin Mocha": {
			Border:        mocha.Mauve().Hex,
			HeaderText:    mocha.Text().Hex,
			Highlight:     mocha.Peach().Hex,
			ConfirmBorder: mocha.Maroon().Hex,
			GitBranch:     mocha.Lavender().Hex,
			GitClean:      mocha.Green().Hex,
			GitDirty:      mocha.Yellow().Hex,
			NoGit:         mocha.Overlay0().Hex,
			Text:          mocha.Text().Hex,
			Surface:       mocha.Base().Hex,
			Error:         mocha.Red().Hex,
		},
		"Dracula": {
			Border:        "#bd93f9",
			HeaderText:    "#f8f8f2",
			Highlight:     "#ff79c6",
			ConfirmBorder: "#ffb86c",
			GitBranch:     "#8be9fd",
			GitClean:      "#50fa7b",
			GitDirty:      "#f1fa8c",
			NoGit:         "#6272a4",
			Text:          "#f8f8f2",
			Surface:       "#282a36",
			Error:         "#ff5555",
		},
		"Gruvbox": {
			Border:        "#98971a",
			HeaderText:    "#ebdbb2",
			Highlight:     "#fabd2f",
			ConfirmBorder: "#d65d0e",
			GitBranch:     "#83a598",
			GitClean:      "#b8bb26",
			GitDirty:      "#fe8019",
			NoGit:         "#928374",
			Text:          "#ebdbb2",
			Surface:       "#282828",
			Error:         "#fb4934",
		},
		"Nord": {
			Border:        "#88c0d0",
			HeaderText:    "#eceff4",
			Highlight:     "#ebcb8b",
			ConfirmBorder: "#d08770",
			GitBranch:     "#81a1c1",
			GitClean:      "#a3be8c",
			GitDirty:      "#ebcb8b",
			NoGit:         "#4c566a",
			Text:          "#d8dee9",
			Surface:       "#2e3440",
			Error:         "#bf616a",
		},
		"Solarized Dark": {
			Border:        "#268bd2",
			HeaderText:    "#93a1a1",
			Highlight:     "#b58900",
			ConfirmBorder: "#cb4b16",
			GitBranch:     "#6c71c4",
			GitClean:      "#859900",
			GitDirty:      "#cb4b16",
			NoGit:         "#586e75",
			Text:          "#839496",
			Surface:       "#002b36",
			Error:         "#dc322f",
		},
		"One Dark": {
			Border:        "#61afef",
			HeaderText:    "#abb2bf",
			Highlight:     "#e5c07b",
			ConfirmBorder: "#d19a66",
			GitBranch:     "#c678dd",
			GitClean:      "#98c379",
			GitDirty:      "#e06c75",
			NoGit:         "#5c6370",
			Text:          "#abb2bf",
			Surface:       "#282c34",
			Error:         "#e06c75",
		},
		"Tokyo Night": {
			Border:        "#7aa2f7",
			HeaderText:    "#c0caf5",
			Highlight:     "#e0af68",
			ConfirmBorder: "#ff9e64",
			GitBranch:     "#bb9af7",
			GitClean:      "#9ece6a",
			GitDirty:      "#e0af68",
			NoGit:         "#565f89",
			Text:          "#a9b1d6",
			Surface:       "#1a1b26",
			Error:         "#f7768e",
		},
		"Everforest": {
			Border:        "#a7c080",
			HeaderText:    "#d3c6aa",
			Highlight:     "#dbbc7f",
			ConfirmBorder: "#e69875",
			GitBranch:     "#7fbbb3",
			GitClean:      "#a7c080",
			GitDirty:      "#dbbc7f",
			NoGit:         "#859289",
			Text:          "#d3c6aa",
			Surface:       "#2d353b",
			Error:         "#e67e80",
		},
		"Rose Pine": {
			Border:        "#c4a7e7",
			HeaderText:    "#e0def4",
			Highlight:     "#f6c177",
			ConfirmBorder: "#ebbcba",
			GitBranch:     "#9ccfd8",
			GitClean:      "#31748f",
			GitDirty:      "#f6c177",
			NoGit:         "#6e6a86",
			Text:          "#e0def4",
			Surface:       "#191724",
			Error:         "#eb6f92",
		},
		"Ayu Mirage": {
			Border:        "#ffcc66",
			HeaderText:    "#cbccc6",
			Highlight:     "#ffd580",
			ConfirmBorder: "#ffa759",
			GitBranch:     "#5ccfe6",
			GitClean:      "#bae67e",
			GitDirty:      "#ffa759",
			NoGit:         "#5c6773",
			Text:          "#cbccc6",
			Surface:       "#1f2430",
			Error:         "#ff3333",
		},
	}
}

// Load builds the style set for the named theme. Unknown names fall back
// to the default palette so a stale config value never breaks rendering.
func Load(name string) *Styles {
	pal, ok := palettes()[name]
	if !ok {
		name = DefaultName
		pal = palettes()[DefaultName]
	}
	return build(name, pal)
}

func build(name string, pal Palette) *Styles {
	return &Styles{
		Name:   name,
		Header: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.HeaderText)).Bold(true)),
		Item:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Text))),
		ItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.NoGit)),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Highlight)).Bold(true),
		),
		SelectedItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Highlight)),
		),
		Error:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Error)).Bold(true)),
		Info:   ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Text))),
		Footer: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.NoGit))),
		Filter: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Text))),
		FilterPrompt: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Border)).Bold(true),
		),
		FilterPlaceholder: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.NoGit)),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Surface)).Background(lipgloss.Color(pal.Highlight)).Blink(true),
		),
		Loading: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Border)).Italic(true),
		),
		GitBranch: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.GitBranch))),
		GitClean:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.GitClean))),
		GitDirty:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.GitDirty))),
		NoGit:     ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.NoGit))),
		Favorite:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Highlight))),
		Language:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.GitBranch))),
		ConfirmBorder: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.ConfirmBorder)).Bold(true),
		),
		PreviewTitle: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(pal.HeaderText)).Bold(true),
		),
		PreviewBody:  ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Text))),
		PreviewError: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Error)).Bold(true)),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
