package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"LeraAssistant/internal/models"
	"LeraAssistant/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password cannot be empty")
)

// 회원가입 / 로그인 자격 증명 처리
type Credentials struct {
	users storage.UserStore
	cost  int
}

func NewCredentials(users storage.UserStore) *Credentials {
	return &Credentials{users: users, cost: bcrypt.DefaultCost}
}

// 이미 있는 사용자명이면 storage.ErrUsernameExists
func (c *Credentials) Register(ctx context.Context, username, password string) error {
	// " "으로 입력되는 케이스 방지
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrEmptyCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return fmt.Errorf("Register(): failed to hash password: %w", err)
	}
	return c.users.CreateUser(ctx, models.User{Username: username, PasswordHash: string(hashed)})
}

// 사용자가 없거나 비밀번호가 다르면 ErrInvalidCredentials
func (c *Credentials) Verify(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	user, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("Verify(): failed to load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
