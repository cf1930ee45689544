package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"LeraAssistant/internal/models"
)

// users.json 기반 사용자 저장소
// 호출마다 문서 전체를 읽고 다시 씀. mu로 read-modify-write 구간을 직렬화해서
// 동시 회원가입 시 한쪽 변경이 사라지는 문제를 막음
type JSONUserStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONUserStore(path string) (*JSONUserStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("NewJSONUserStore(): users file path is required")
	}
	if err := ensureJSON(path, map[string]models.StoredCredential{}); err != nil {
		return nil, err
	}
	return &JSONUserStore{path: path}, nil
}

func (s *JSONUserStore) load() (map[string]models.StoredCredential, error) {
	users := make(map[string]models.StoredCredential)
	if err := readJSON(s.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *JSONUserStore) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if _, exists := users[user.Username]; exists {
		return ErrUsernameExists
	}
	users[user.Username] = models.StoredCredential{PasswordHash: user.PasswordHash}
	return writeJSON(s.path, users)
}

func (s *JSONUserStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	cred, ok := users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return models.User{Username: username, PasswordHash: cred.PasswordHash}, nil
}
