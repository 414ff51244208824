package menu

import "github.com/ideatui/idea-tui/internal/theme"

// loadThemeMenu lists every selectable color theme.
func loadThemeMenu(Context) ([]Item, error) {
	names := theme.Names()
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{ID: IDTheme + ":" + name, Label: name})
	}
	return items, nil
}
