package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a discovered project directory, one level below a category.
// Identity is the absolute path; everything else is display metadata.
type Entry struct {
	Name     string
	Path     string
	Category string
	Language string
}

// Category groups the entries found under one first-level subdirectory
// of the base directory.
type Category struct {
	Name    string
	Entries []Entry
}

// Index is the immutable result of scanning the base directory.
// Rescans build a fresh Index and replace the old one wholesale, so
// status lookups keyed by path stay valid across rescans.
type Index struct {
	baseDir    string
	categories []Category
	byPath     map[string]Entry
}

// Scan walks base_dir two levels deep: first-level directories become
// categories, second-level directories become project entries. Hidden
// and non-directory entries are skipped at both levels.
func Scan(baseDir string) (*Index, error) {
	dirents, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("scan base dir %s: %w", baseDir, err)
	}
	idx := &Index{
		baseDir: baseDir,
		byPath:  make(map[string]Entry),
	}
	for _, dirent := range dirents {
		if !dirent.IsDir() || strings.HasPrefix(dirent.Name(), ".") {
			continue
		}
		category := Category{Name: dirent.Name()}
		catPath := filepath.Join(baseDir, dirent.Name())
		children, err := os.ReadDir(catPath)
		if err != nil {
			// An unreadable category is skipped, not fatal; the base
			// dir itself was already readable.
			continue
		}
		for _, child := range children {
			if !child.IsDir() || strings.HasPrefix(child.Name(), ".") {
				continue
			}
			path := filepath.Join(catPath, child.Name())
			entry := Entry{
				Name:     child.Name(),
				Path:     path,
				Category: category.Name,
				Language: DetectLanguage(path),
			}
			category.Entries = append(category.Entries, entry)
			idx.byPath[path] = entry
		}
		idx.categories = append(idx.categories, category)
	}
	return idx, nil
}

// BaseDir returns the directory this index was scanned from.
func (i *Index) BaseDir() string {
	return i.baseDir
}

// Categories returns category names in directory listing order.
func (i *Index) Categories() []string {
	names := make([]string, 0, len(i.categories))
	for _, c := range i.categories {
		names = append(names, c.Name)
	}
	return names
}

// Projects returns the entries for the named category.
func (i *Index) Projects(category string) []Entry {
	for _, c := range i.categories {
		if c.Name == category {
			return c.Entries
		}
	}
	return nil
}

// Lookup resolves an entry by its path.
func (i *Index) Lookup(path string) (Entry, bool) {
	entry, ok := i.byPath[path]
	return entry, ok
}

// Len reports the total number of project entries.
func (i *Index) Len() int {
	return len(i.byPath)
}

// EntryFromPath builds an entry for a path that may not be part of the
// index, e.g. a favorite or recent project recorded before a rescan.
func EntryFromPath(path string) Entry {
	return Entry{
		Name:     filepath.Base(path),
		Path:     path,
		Category: filepath.Base(filepath.Dir(path)),
		Language: DetectLanguage(path),
	}
}

// DetectLanguage guesses the primary language of a project from its
// marker files. Returns "" when nothing matches.
func DetectLanguage(dir string) string {
	markers := []struct {
		file     string
		language string
	}{
		{"Cargo.toml", "Rust"},
		{"pom.xml", "Java"},
		{"build.gradle", "Java"},
		{"build.gradle.kts", "Java"},
		{"package.json", "JS/TS"},
		{"pyproject.toml", "Python"},
		{"requirements.txt", "Python"},
		{"go.mod", "Go"},
	}
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
			return m.language
		}
	}
	return ""
}

// Exists reports whether the path still points at a directory on disk.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
