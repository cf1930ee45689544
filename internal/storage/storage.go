package storage

import (
	"context"
	"errors"

	"LeraAssistant/internal/models"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrUserNotFound   = errors.New("user not found")
)

// 사용자 자격 증명 저장소
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// 모든 사용자가 공유하는 대화 기록 (삽입 순서 유지)
type MemoryStore interface {
	Append(ctx context.Context, entry models.MemoryEntry) error
	// 마지막 n개 항목을 삽입 순서대로 반환
	Recent(ctx context.Context, n int) ([]models.MemoryEntry, error)
	ByUser(ctx context.Context, username string) ([]models.MemoryEntry, error)
	Len(ctx context.Context) (int, error)
}

func tail(entries []models.MemoryEntry, n int) []models.MemoryEntry {
	if n <= 0 {
		return []models.MemoryEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]models.MemoryEntry, n)
	copy(out, entries[len(entries)-n:])
	return out
}
