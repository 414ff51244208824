package menu

import (
	"fmt"
	"path/filepath"
)

// loadFavoritesMenu lists favorite projects sorted by name. Paths that
// vanished from disk are already filtered by the store.
func loadFavoritesMenu(ctx Context) ([]Item, error) {
	paths := ctx.History.Favorites()
	if len(paths) == 0 {
		return nil, fmt.Errorf("no favorite projects yet")
	}
	return pathItems(ctx, paths), nil
}

// loadRecentMenu lists recently opened projects, most recent first.
func loadRecentMenu(ctx Context) ([]Item, error) {
	paths := ctx.History.Recents()
	if len(paths) == 0 {
		return nil, fmt.Errorf("no recent projects yet")
	}
	return pathItems(ctx, paths), nil
}

// loadCategoryMenu lists the first-level directories of the base dir.
func loadCategoryMenu(ctx Context) ([]Item, error) {
	categories := ctx.Index.Categories()
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories found in %s", ctx.BaseDir)
	}
	items := make([]Item, 0, len(categories))
	for _, name := range categories {
		items = append(items, Item{ID: IDOpen + ":" + name, Label: name})
	}
	return items, nil
}

// loadCloneCategoryMenu lists categories as clone destinations.
func loadCloneCategoryMenu(ctx Context) ([]Item, error) {
	categories := ctx.Index.Categories()
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories found in %s", ctx.BaseDir)
	}
	items := make([]Item, 0, len(categories))
	for _, name := range categories {
		items = append(items, Item{
			ID:    IDClone + ":" + name,
			Label: name,
			Path:  filepath.Join(ctx.BaseDir, name),
		})
	}
	return items, nil
}

// FavoriteItems reloads the favorites list, used by the UI to refresh
// an on-screen favorites level after a toggle.
func FavoriteItems(ctx Context) ([]Item, error) {
	return loadFavoritesMenu(ctx)
}

// RecentItems reloads the recent-projects list, used by the UI after a
// launch or rescan.
func RecentItems(ctx Context) ([]Item, error) {
	return loadRecentMenu(ctx)
}

// ProjectItems lists the projects of one category.
func ProjectItems(ctx Context, category string) ([]Item, error) {
	entries := ctx.Index.Projects(category)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no projects in %s", category)
	}
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{
			ID:       entry.Path,
			Label:    entry.Name,
			Path:     entry.Path,
			Language: entry.Language,
		})
	}
	return items, nil
}

func pathItems(ctx Context, paths []string) []Item {
	items := make([]Item, 0, len(paths))
	for _, path := range paths {
		entry, ok := ctx.Index.Lookup(path)
		if !ok {
			entry = ProjectEntry{
				Name:     filepath.Base(path),
				Path:     path,
				Category: filepath.Base(filepath.Dir(path)),
			}
		}
		items = append(items, Item{
			ID:       path,
			Label:    entry.Name,
			Path:     path,
			Language: entry.Language,
		})
	}
	return items
}
