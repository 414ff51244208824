package state

import "github.com/ideatui/idea-tui/internal/gitstatus"

// StatusStore keeps resolved git statuses keyed by project path. Paths
// survive rescans, so entries never need index-based remapping.
type StatusStore interface {
	Get(path string) (gitstatus.Status, bool)
	Set(path string, status gitstatus.Status)
	Drop(path string)
	Snapshot() map[string]gitstatus.Status
}

type statusStore struct {
	byPath map[string]gitstatus.Status
}

func NewStatusStore() StatusStore {
	return &statusStore{byPath: make(map[string]gitstatus.Status)}
}

func (s *statusStore) Get(path string) (gitstatus.Status, bool) {
	status, ok := s.byPath[path]
	return status, ok
}

func (s *statusStore) Set(path string, status gitstatus.Status) {
	s.byPath[path] = status
}

func (s *statusStore) Drop(path string) {
	delete(s.byPath, path)
}

func (s *statusStore) Snapshot() map[string]gitstatus.Status {
	dup := make(map[string]gitstatus.Status, len(s.byPath))
	for path, status := range s.byPath {
		dup[path] = status
	}
	return dup
}
