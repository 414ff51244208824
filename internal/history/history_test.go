package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideatui/idea-tui/internal/logging"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	s.exists = func(string) bool { return true }
	return s
}

func TestToggleFavorite(t *testing.T) {
	s := newStore(t)

	assert.True(t, s.ToggleFavorite("/p/a"))
	assert.True(t, s.IsFavorite("/p/a"))
	assert.False(t, s.ToggleFavorite("/p/a"))
	assert.False(t, s.IsFavorite("/p/a"))
}

func TestMutationsSurviveUnwritableStateDir(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "test.log"))
	dir := t.TempDir()
	s, err := Load(dir)
	require.NoError(t, err)
	s.exists = func(string) bool { return true }
	require.NoError(t, os.RemoveAll(dir))

	// Persistence fails, but the in-memory lists still update and the
	// failure lands in the log instead of being swallowed silently.
	assert.True(t, s.ToggleFavorite("/p/a"))
	assert.True(t, s.IsFavorite("/p/a"))
	s.RecordOpened("/p/b")
	assert.Equal(t, []string{"/p/b"}, s.Recents())
}

func TestFavoritesSortedByName(t *testing.T) {
	s := newStore(t)
	s.ToggleFavorite("/x/zeta")
	s.ToggleFavorite("/y/Alpha")
	s.ToggleFavorite("/z/beta")

	assert.Equal(t, []string{"/y/Alpha", "/z/beta", "/x/zeta"}, s.Favorites())
}

func TestRecordOpenedDeduplicatesAndCaps(t *testing.T) {
	s := newStore(t)

	s.RecordOpened("/p/a")
	s.RecordOpened("/p/b")
	s.RecordOpened("/p/a")
	assert.Equal(t, []string{"/p/a", "/p/b"}, s.Recents())

	for i := 0; i < MaxRecents+5; i++ {
		s.RecordOpened(filepath.Join("/bulk", string(rune('a'+i))))
	}
	recents := s.Recents()
	assert.Len(t, recents, MaxRecents)
	assert.Equal(t, filepath.Join("/bulk", string(rune('a'+MaxRecents+4))), recents[0])
}

func TestMissingPathsFilteredOnRead(t *testing.T) {
	s := newStore(t)
	s.ToggleFavorite("/gone")
	s.ToggleFavorite("/here")
	s.RecordOpened("/gone")
	s.RecordOpened("/here")
	s.exists = func(p string) bool { return p == "/here" }

	assert.Equal(t, []string{"/here"}, s.Favorites())
	assert.Equal(t, []string{"/here"}, s.Recents())

	// The raw lists keep missing entries so they reappear if the
	// path comes back.
	s.exists = func(string) bool { return true }
	assert.Len(t, s.Favorites(), 2)
	assert.Len(t, s.Recents(), 2)
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(dir)
	require.NoError(t, err)
	s.exists = func(string) bool { return true }
	s.ToggleFavorite("/p/a")
	s.RecordOpened("/p/b")
	s.RecordOpened("/p/a")

	reloaded, err := Load(dir)
	require.NoError(t, err)
	reloaded.exists = func(string) bool { return true }
	assert.Equal(t, []string{"/p/a"}, reloaded.Favorites())
	assert.Equal(t, []string{"/p/a", "/p/b"}, reloaded.Recents())
}

func TestLoadToleratesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, favoritesFilename), []byte("{not json"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadTruncatesOversizedRecents(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(dir)
	require.NoError(t, err)
	for i := 0; i < MaxRecents; i++ {
		s.recents = append(s.recents, filepath.Join("/bulk", string(rune('a'+i))))
	}
	s.recents = append(s.recents, "/extra")
	require.NoError(t, s.Save())

	reloaded, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, reloaded.recents, MaxRecents)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(dir)
	require.NoError(t, err)
	s.ToggleFavorite("/p/a")
	s.RecordOpened("/p/a")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
