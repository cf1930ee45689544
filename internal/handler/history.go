package handler

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"LeraAssistant/internal/artifact"
	"LeraAssistant/internal/middleware"
	"LeraAssistant/internal/models"
)

// GetHistory godoc
// @Summary      사용자 대화 기록 조회
// @Description  요청한 사용자의 과거 대화 기록을 저장된 순서대로 반환합니다.
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.HistoryResponse
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	entries, err := h.assistant.History(c.Request.Context(), c.GetString(middleware.UsernameKey))
	if err != nil {
		abortWithError(c, err, "Failed to fetch history")
		return
	}
	if entries == nil {
		entries = []models.MemoryEntry{}
	}
	c.JSON(http.StatusOK, HistoryResponse{History: entries})
}

// ServeFile godoc
// @Summary      생성된 파일 다운로드
// @Description  음성 답변(.mp3), 업로드 음성, PDF 파일을 파일명으로 내려받습니다.
// @Description  <br>
// @Description  **인증 방법:**
// @Description  1. **Header:** `Authorization: Bearer {token}`
// @Description  2. **Query:** `?token={token}` (웹/HTML 오디오 태그용)
// @Tags         History
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        filename path  string true  "파일명 (예: uuid.mp3)"
// @Param        token    query string false "JWT 토큰 (헤더 사용 시 생략 가능)"
// @Success      200 {file}   file "파일 스트림"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      404 {object} handler.ErrorResponse "파일을 찾을 수 없음"
// @Router       /files/{filename} [get]
func (h *Handler) ServeFile(c *gin.Context) {
	name := c.Param("filename")
	for _, dir := range h.artifactDirs {
		path, err := artifact.Resolve(dir, name)
		if errors.Is(err, artifact.ErrInvalidName) {
			break
		}
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			c.File(path)
			return
		}
	}
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
}

// Healthz godoc
// @Summary      상태 확인
// @Description  서버와 모델 서버의 상태를 반환합니다. 모델 서버에 연결할 수 없으면 503.
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Failure      503 {object} handler.HealthResponse
// @Router       /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if h.pinger == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Model: "unknown"})
		return
	}
	if err := h.pinger.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Model: err.Error()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Model: "ok"})
}
