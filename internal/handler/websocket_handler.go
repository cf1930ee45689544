package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"LeraAssistant/internal/logging"
)

// HTTP 연결을 WebSocket으로 업그레이드
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsWriteWait = 10 * time.Second

// 서버 → 클라이언트 메시지, 실패 시 Error만 채워짐
type WSMessage struct {
	Reply string `json:"reply,omitempty"`
	Audio string `json:"audio,omitempty"`
	Error string `json:"error,omitempty"`
}

// HandleChatConnection godoc
// @Summary      대화 WebSocket 연결
// @Description  텍스트 메시지를 주고받는 WebSocket 연결을 시작합니다. 각 메시지는 /chat 과 같은 방식으로 처리됩니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Description  클라이언트 메시지는 `{"message": "..."}` JSON 또는 일반 텍스트입니다.
// @Tags         WebSocket (Chat)
// @Param        token query    string true "로그인 시 발급받은 JWT 토큰"
// @Success      101   {string} string "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)"
// @Failure      401   {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/chat [get]
func (h *Handler) HandleChatConnection(c *gin.Context) {
	logger := logging.FromCtx(c.Request.Context())

	// 사용자 토큰 검증
	username, err := h.tokens.Verify(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	// WebSocket 연결 업그레이드과 종료
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Str("user", username).Msg("HandleChatConnection(): failed to upgrade to WebSocket")
		return
	}
	logger.Info().Str("user", username).Msg("HandleChatConnection(): WebSocket connection established")

	h.manageTextSession(c, conn, username)
}

func (h *Handler) manageTextSession(c *gin.Context, conn *websocket.Conn, username string) {
	defer conn.Close()
	ctx := c.Request.Context()
	logger := logging.FromCtx(ctx)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Str("user", username).Msg("manageTextSession(): read failed")
			}
			break
		}
		if messageType != websocket.TextMessage {
			logger.Debug().Str("user", username).Int("type", messageType).Msg("manageTextSession(): unsupported message type")
			continue
		}

		var out WSMessage
		reply, err := h.assistant.Chat(ctx, username, parseWSMessage(message))
		if err != nil {
			logger.Error().Err(err).Str("user", username).Msg("manageTextSession(): chat failed")
			out.Error = http.StatusText(statusFor(err))
		} else {
			out.Reply, out.Audio = reply.Text, reply.AudioPath
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(out); err != nil {
			logger.Error().Err(err).Str("user", username).Msg("manageTextSession(): write failed")
			break
		}
	}
	logger.Info().Str("user", username).Msg("manageTextSession(): session ended")
}

// {"message": "..."} 형식이 아니면 원문 그대로 사용
func parseWSMessage(raw []byte) string {
	var req ChatRequest
	if err := json.Unmarshal(raw, &req); err == nil && req.Message != "" {
		return req.Message
	}
	return string(raw)
}
