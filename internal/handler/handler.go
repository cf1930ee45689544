/**
* Name: 			handler.go
* Description: 		Gin 프레임워크의 HTTP 핸들러 공통 타입
* Workflow: 		의존성 보관, 요청/응답 바디 정의, 오류 → 상태 코드 변환
 */
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"LeraAssistant/internal/apperror"
	"LeraAssistant/internal/assistant"
	"LeraAssistant/internal/auth"
	"LeraAssistant/internal/document"
	"LeraAssistant/internal/logging"
	"LeraAssistant/internal/models"
)

type Accounts interface {
	Register(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, password string) error
}

type Tokens interface {
	Issue(username string) (string, error)
	Verify(token string) (string, error)
}

type Assistant interface {
	Chat(ctx context.Context, username, message string) (assistant.Reply, error)
	Voice(ctx context.Context, username string, upload io.Reader, ext string) (assistant.VoiceReply, error)
	MathPDF(ctx context.Context, topic string) (document.Document, error)
	History(ctx context.Context, username string) ([]models.MemoryEntry, error)
}

// 헬스 체크 대상 (모델 서버 등)
type Pinger interface {
	Health(ctx context.Context) error
}

type Handler struct {
	accounts     Accounts
	tokens       Tokens
	assistant    Assistant
	pinger       Pinger
	artifactDirs []string
}

func New(accounts Accounts, tokens Tokens, assistant Assistant, pinger Pinger, artifactDirs ...string) *Handler {
	return &Handler{
		accounts:     accounts,
		tokens:       tokens,
		assistant:    assistant,
		pinger:       pinger,
		artifactDirs: artifactDirs,
	}
}

// /register, /login 요청 바디
type CredentialsRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw1"`
}

type ChatRequest struct {
	Message string `json:"message" example:"bugün hava nasıl"`
}

type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

type LoginSuccessResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ChatResponse struct {
	Reply string `json:"reply" example:"Merhaba! Size nasıl yardımcı olabilirim?"`
	Audio string `json:"audio" example:"data/audio/1b4e28ba-2fa1-11d2-883f-0016d3cca427.mp3"`
}

type VoiceResponse struct {
	ChatResponse
	Transcript string `json:"transcript" example:"merhaba"`
}

type PDFResponse struct {
	PDF string `json:"pdf" example:"data/pdf/1b4e28ba-2fa1-11d2-883f-0016d3cca427.pdf"`
}

type HistoryResponse struct {
	History []models.MemoryEntry `json:"history"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Model  string `json:"model" example:"ok"`
}

// 서비스 오류를 HTTP 상태 코드로 변환
func statusFor(err error) int {
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage), errors.Is(err, assistant.ErrEmptyTopic):
		return http.StatusBadRequest
	case errors.Is(err, assistant.ErrUnreadableAudio):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperror.IsRetryable(err):
		return http.StatusServiceUnavailable
	case apperror.IsFatal(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	logErr(c, err, status)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

func logErr(c *gin.Context, err error, status int) {
	logger := logging.FromCtx(c.Request.Context())
	logger.Error().Err(err).Int("status", status).Str("path", c.FullPath()).Msg("request failed")
}
