package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"LeraAssistant/internal/models"
)

// memory.json 기반 대화 기록, 모든 사용자가 하나의 목록을 공유함
type JSONMemoryStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONMemoryStore(path string) (*JSONMemoryStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("NewJSONMemoryStore(): memory file path is required")
	}
	if err := ensureJSON(path, []models.MemoryEntry{}); err != nil {
		return nil, err
	}
	return &JSONMemoryStore{path: path}, nil
}

func (s *JSONMemoryStore) load() ([]models.MemoryEntry, error) {
	entries := []models.MemoryEntry{}
	if err := readJSON(s.path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *JSONMemoryStore) Append(_ context.Context, entry models.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return writeJSON(s.path, entries)
}

func (s *JSONMemoryStore) Recent(_ context.Context, n int) ([]models.MemoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	return tail(entries, n), nil
}

func (s *JSONMemoryStore) ByUser(_ context.Context, username string) ([]models.MemoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	out := []models.MemoryEntry{}
	for _, e := range entries {
		if e.User == username {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *JSONMemoryStore) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
