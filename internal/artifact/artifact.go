/**
* Name: 			artifact.go
* Description: 		생성 파일(음성 답변, 업로드 음성, PDF) 이름 부여 및 경로 확인
* Workflow: 		UUID 파일명 생성, 한 번 기록, 삭제하지 않음
 */
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("invalid artifact name")

// 새 UUID 파일 경로 생성, ext는 ".mp3" 형태
func NewPath(dir, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("NewPath(): failed to create dir %s: %w", dir, err)
	}
	return filepath.Join(dir, uuid.New().String()+ext), nil
}

func Write(dir, ext string, data []byte) (string, error) {
	path, err := NewPath(dir, ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("Write(): failed to write %s: %w", path, err)
	}
	return path, nil
}

func Copy(dir, ext string, r io.Reader) (string, error) {
	path, err := NewPath(dir, ext)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("Copy(): failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("Copy(): failed to write %s: %w", path, err)
	}
	return path, f.Close()
}

// 요청된 파일명을 dir 안의 경로로 변환
// UUID 이름만 허용해서 users.json 같은 저장소 파일은 노출되지 않음
func Resolve(dir, name string) (string, error) {
	clean := filepath.Base(name)
	if clean != name || strings.HasPrefix(clean, ".") {
		return "", ErrInvalidName
	}
	if _, err := uuid.Parse(strings.TrimSuffix(clean, filepath.Ext(clean))); err != nil {
		return "", ErrInvalidName
	}
	return filepath.Join(dir, clean), nil
}
