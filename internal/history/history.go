package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ideatui/idea-tui/internal/logging"
	"github.com/ideatui/idea-tui/internal/project"
)

const (
	favoritesFilename = "favorites.json"
	recentsFilename   = "recents.json"

	// MaxRecents bounds the recent-projects list.
	MaxRecents = 10

	filePerms = 0o600
	dirPerms  = 0o755
)

// Store keeps the favorite set and recent list with write-through,
// crash-safe persistence. It is owned by the main loop and never
// touched from background goroutines.
type Store struct {
	dir       string
	favorites map[string]struct{}
	recents   []string
	exists    func(string) bool
}

// Load reads the persisted lists from dir, creating it when missing.
// Entries whose paths no longer exist stay in the raw lists and are
// filtered on read, so a transiently unmounted drive does not lose
// favorites.
func Load(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("create state dir %s: %w", dir, err)
	}
	s := &Store{
		dir:       dir,
		favorites: make(map[string]struct{}),
		exists:    project.Exists,
	}

	var favs []string
	if err := readJSON(filepath.Join(dir, favoritesFilename), &favs); err != nil {
		return nil, err
	}
	for _, p := range favs {
		if strings.TrimSpace(p) != "" {
			s.favorites[p] = struct{}{}
		}
	}

	var recents []string
	if err := readJSON(filepath.Join(dir, recentsFilename), &recents); err != nil {
		return nil, err
	}
	for _, p := range recents {
		if strings.TrimSpace(p) == "" {
			continue
		}
		s.recents = append(s.recents, p)
		if len(s.recents) == MaxRecents {
			break
		}
	}

	return s, nil
}

// ToggleFavorite adds path when absent and removes it when present,
// persisting immediately. Returns the new membership state.
func (s *Store) ToggleFavorite(path string) bool {
	_, present := s.favorites[path]
	if present {
		delete(s.favorites, path)
	} else {
		s.favorites[path] = struct{}{}
	}
	if err := s.Save(); err != nil {
		logging.Error(err)
	}
	return !present
}

// IsFavorite reports favorite membership for path.
func (s *Store) IsFavorite(path string) bool {
	_, ok := s.favorites[path]
	return ok
}

// Favorites returns the favorite paths that still exist on disk,
// sorted case-insensitively by project name.
func (s *Store) Favorites() []string {
	out := make([]string, 0, len(s.favorites))
	for p := range s.favorites {
		if s.exists(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a := strings.ToLower(filepath.Base(out[i]))
		b := strings.ToLower(filepath.Base(out[j]))
		if a == b {
			return out[i] < out[j]
		}
		return a < b
	})
	return out
}

// RecordOpened moves path to the front of the recent list, dropping any
// previous occurrence and truncating to MaxRecents, then persists.
func (s *Store) RecordOpened(path string) {
	next := make([]string, 0, len(s.recents)+1)
	next = append(next, path)
	for _, p := range s.recents {
		if p != path {
			next = append(next, p)
		}
	}
	if len(next) > MaxRecents {
		next = next[:MaxRecents]
	}
	s.recents = next
	if err := s.Save(); err != nil {
		logging.Error(err)
	}
}

// Recents returns the recent paths that still exist on disk, most
// recent first.
func (s *Store) Recents() []string {
	out := make([]string, 0, len(s.recents))
	for _, p := range s.recents {
		if s.exists(p) {
			out = append(out, p)
		}
	}
	return out
}

// Save writes both lists using an atomic replace so a crash mid-write
// cannot corrupt the persisted state.
func (s *Store) Save() error {
	favs := make([]string, 0, len(s.favorites))
	for p := range s.favorites {
		favs = append(favs, p)
	}
	sort.Strings(favs)
	if err := writeJSONAtomic(filepath.Join(s.dir, favoritesFilename), favs); err != nil {
		return err
	}
	return writeJSONAtomic(filepath.Join(s.dir, recentsFilename), s.recents)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmpName)
		if werr != nil {
			return werr
		}
		return cerr
	}
	if err := os.Chmod(tmpName, filePerms); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
