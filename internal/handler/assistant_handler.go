/**
* Name: 			assistant_handler.go
* Description: 		대화, 음성, 수학 PDF 엔드포인트
 */
package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"LeraAssistant/internal/assistant"
	"LeraAssistant/internal/middleware"
)

// Chat godoc
// @Summary      텍스트 대화
// @Description  메시지를 모델에 전달하고 답변 텍스트와 합성된 음성 파일 경로를 반환합니다.
// @Description  "bugün", "güncel" 등의 단어가 포함되면 웹 검색 요약을 함께 전달합니다.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.ChatRequest true "메시지"
// @Success      200 {object} handler.ChatResponse
// @Failure      400 {object} handler.ErrorResponse "빈 메시지"
// @Failure      401 {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Failure      502 {object} handler.ErrorResponse "모델/검색 오류"
// @Failure      503 {object} handler.ErrorResponse "일시적 오류, 재시도 가능"
// @Router       /chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), c.GetString(middleware.UsernameKey), req.Message)
	if err != nil {
		abortWithError(c, err, "Chat failed")
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Reply: reply.Text, Audio: reply.AudioPath})
}

// Voice godoc
// @Summary      음성 대화
// @Description  업로드된 음성 파일을 텍스트로 변환한 뒤 /chat 과 같은 방식으로 처리합니다.
// @Tags         Assistant
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "음성 파일 (wav 권장)"
// @Success      200 {object} handler.VoiceResponse
// @Failure      400 {object} handler.ErrorResponse "파일 누락"
// @Failure      401 {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Failure      422 {object} handler.ErrorResponse "인식할 수 없는 오디오"
// @Failure      502 {object} handler.ErrorResponse "모델/검색 오류"
// @Failure      503 {object} handler.ErrorResponse "일시적 오류, 재시도 가능"
// @Router       /voice [post]
func (h *Handler) Voice(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is unreadable"})
		return
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !audioExt[ext] {
		ext = ".wav"
	}

	reply, err := h.assistant.Voice(c.Request.Context(), c.GetString(middleware.UsernameKey), f, ext)
	if err != nil {
		if errors.Is(err, assistant.ErrUnreadableAudio) {
			abortWithError(c, err, "Audio could not be processed")
			return
		}
		abortWithError(c, err, "Voice failed")
		return
	}
	c.JSON(http.StatusOK, VoiceResponse{
		ChatResponse: ChatResponse{Reply: reply.Text, Audio: reply.AudioPath},
		Transcript:   reply.Transcript,
	})
}

var audioExt = map[string]bool{
	".wav": true, ".flac": true, ".mp3": true, ".ogg": true, ".webm": true, ".m4a": true,
}

// MathPDF godoc
// @Summary      수학 증명 PDF 생성
// @Description  주제에 대한 증명을 모델로 생성하고 줄 단위 문단으로 나눈 PDF 파일 경로를 반환합니다.
// @Tags         Assistant
// @Produce      json
// @Security     BearerAuth
// @Param        topic query string true "주제 (form 필드로도 전달 가능)"
// @Success      200 {object} handler.PDFResponse
// @Failure      400 {object} handler.ErrorResponse "주제 누락"
// @Failure      401 {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Failure      502 {object} handler.ErrorResponse "모델 오류"
// @Router       /math-pdf [post]
func (h *Handler) MathPDF(c *gin.Context) {
	topic := c.Query("topic")
	if topic == "" {
		topic = c.PostForm("topic")
	}
	if strings.TrimSpace(topic) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "topic is required"})
		return
	}

	doc, err := h.assistant.MathPDF(c.Request.Context(), topic)
	if err != nil {
		abortWithError(c, err, "PDF generation failed")
		return
	}
	c.JSON(http.StatusOK, PDFResponse{PDF: doc.Path})
}
