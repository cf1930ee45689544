package storage

import (
	"context"
	"database/sql"

	"LeraAssistant/internal/models"
)

type SQLiteMemoryStore struct {
	db *sql.DB
}

func NewSQLiteMemoryStore(db *sql.DB) *SQLiteMemoryStore {
	return &SQLiteMemoryStore{db: db}
}

func (s *SQLiteMemoryStore) Append(ctx context.Context, entry models.MemoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO memory_entries(username, question, answer) VALUES(?, ?, ?)",
		entry.User, entry.Question, entry.Answer)
	return err
}

func (s *SQLiteMemoryStore) Recent(ctx context.Context, n int) ([]models.MemoryEntry, error) {
	if n <= 0 {
		return []models.MemoryEntry{}, nil
	}
	// 최신 n개를 고른 뒤 삽입 순서로 되돌림
	query := `
		SELECT username, question, answer FROM (
			SELECT id, username, question, answer
			FROM memory_entries
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC
	`
	return s.query(ctx, query, n)
}

func (s *SQLiteMemoryStore) ByUser(ctx context.Context, username string) ([]models.MemoryEntry, error) {
	return s.query(ctx,
		"SELECT username, question, answer FROM memory_entries WHERE username = ? ORDER BY id ASC",
		username)
}

func (s *SQLiteMemoryStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM memory_entries").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLiteMemoryStore) query(ctx context.Context, query string, args ...any) ([]models.MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.MemoryEntry{}
	for rows.Next() {
		var e models.MemoryEntry
		if err := rows.Scan(&e.User, &e.Question, &e.Answer); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
