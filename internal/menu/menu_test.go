package menu

import (
	"testing"

	"github.com/ideatui/idea-tui/internal/theme"
)

type fakeIndex struct {
	categories []string
	projects   map[string][]ProjectEntry
	byPath     map[string]ProjectEntry
}

func (f fakeIndex) Categories() []string { return f.categories }

func (f fakeIndex) Projects(category string) []ProjectEntry { return f.projects[category] }

func (f fakeIndex) Lookup(path string) (ProjectEntry, bool) {
	entry, ok := f.byPath[path]
	return entry, ok
}

type fakeHistory struct {
	favorites []string
	recents   []string
}

func (f fakeHistory) Favorites() []string        { return f.favorites }
func (f fakeHistory) Recents() []string          { return f.recents }
func (f fakeHistory) IsFavorite(path string) bool { return false }

func testContext() Context {
	rust := ProjectEntry{Name: "ferris", Path: "/base/rust/ferris", Category: "rust", Language: "Rust"}
	java := ProjectEntry{Name: "beans", Path: "/base/java/beans", Category: "java", Language: "Java"}
	return Context{
		Index: fakeIndex{
			categories: []string{"java", "rust"},
			projects: map[string][]ProjectEntry{
				"rust": {rust},
				"java": {java},
			},
			byPath: map[string]ProjectEntry{rust.Path: rust, java.Path: java},
		},
		History: fakeHistory{
			favorites: []string{"/base/rust/ferris"},
			recents:   []string{"/base/java/beans", "/base/rust/ferris"},
		},
		BaseDir: "/base",
	}
}

func TestRootItemsOrder(t *testing.T) {
	items := RootItems()
	want := []string{IDFavorites, IDRecent, IDOpen, IDClone, IDIde, IDTheme}
	if len(items) != len(want) {
		t.Fatalf("expected %d root items, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("root item %d: expected %q, got %q", i, id, items[i].ID)
		}
	}
}

func TestLoadCategoryMenu(t *testing.T) {
	items, err := loadCategoryMenu(testContext())
	if err != nil {
		t.Fatalf("loadCategoryMenu: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(items))
	}
	if items[0].ID != "open:java" || items[1].ID != "open:rust" {
		t.Fatalf("unexpected category IDs: %q, %q", items[0].ID, items[1].ID)
	}
}

func TestLoadCategoryMenuEmpty(t *testing.T) {
	ctx := Context{Index: fakeIndex{}, BaseDir: "/base"}
	if _, err := loadCategoryMenu(ctx); err == nil {
		t.Fatal("expected error for empty base dir")
	}
}

func TestProjectItems(t *testing.T) {
	items, err := ProjectItems(testContext(), "rust")
	if err != nil {
		t.Fatalf("ProjectItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 project, got %d", len(items))
	}
	if items[0].ID != "/base/rust/ferris" || items[0].Path != "/base/rust/ferris" {
		t.Fatalf("project item should be keyed by path, got %q", items[0].ID)
	}
	if items[0].Language != "Rust" {
		t.Fatalf("expected language Rust, got %q", items[0].Language)
	}
}

func TestLoadFavoritesMenuUsesIndexMetadata(t *testing.T) {
	items, err := loadFavoritesMenu(testContext())
	if err != nil {
		t.Fatalf("loadFavoritesMenu: %v", err)
	}
	if len(items) != 1 || items[0].Label != "ferris" || items[0].Language != "Rust" {
		t.Fatalf("unexpected favorites: %+v", items)
	}
}

func TestLoadRecentMenuKeepsOrder(t *testing.T) {
	items, err := loadRecentMenu(testContext())
	if err != nil {
		t.Fatalf("loadRecentMenu: %v", err)
	}
	if len(items) != 2 || items[0].Label != "beans" {
		t.Fatalf("unexpected recents: %+v", items)
	}
}

func TestLoadRecentMenuFallsBackToPath(t *testing.T) {
	ctx := testContext()
	ctx.History = fakeHistory{recents: []string{"/elsewhere/tools/widget"}}
	items, err := loadRecentMenu(ctx)
	if err != nil {
		t.Fatalf("loadRecentMenu: %v", err)
	}
	if items[0].Label != "widget" {
		t.Fatalf("expected label from path basename, got %q", items[0].Label)
	}
}

func TestLoadThemeMenu(t *testing.T) {
	items, err := loadThemeMenu(Context{})
	if err != nil {
		t.Fatalf("loadThemeMenu: %v", err)
	}
	if len(items) != len(theme.Names()) {
		t.Fatalf("expected %d themes, got %d", len(theme.Names()), len(items))
	}
}

func TestRegistryParents(t *testing.T) {
	reg := BuildRegistry()
	if _, ok := reg.Find(IDFavorites); !ok {
		t.Fatal("favorites node missing")
	}
	node, ok := reg.Child(IDRoot, IDOpen)
	if !ok || node.Loader == nil {
		t.Fatal("open node should hang off root with a loader")
	}
	ide, ok := reg.Find(IDIde)
	if !ok || ide.Action == nil {
		t.Fatal("ide node should carry an action")
	}
}
