package store

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"ludo_broker/internal/domain"
)

// FileStore keeps the match snapshot in a single JSON file. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// truncated snapshot behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var matches []domain.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *FileStore) Save(ctx context.Context, matches []domain.Match) error {
	if matches == nil {
		matches = []domain.Match{}
	}
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
