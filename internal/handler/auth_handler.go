package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"LeraAssistant/internal/auth"
	"LeraAssistant/internal/logging"
	"LeraAssistant/internal/storage"
)

// Register godoc
// @Summary      회원가입 (Register)
// @Description  새로운 사용자 계정을 생성합니다. SIGNUP_INVITE_CODE가 설정된 경우 X-Invite-Code 헤더가 필요합니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        X-Invite-Code header string false "초대 코드"
// @Param        request body handler.CredentialsRequest true "회원가입 요청 정보"
// @Success      200 {object} handler.OKResponse
// @Failure      400 {object} handler.ErrorResponse "이미 존재하는 사용자 또는 잘못된 요청"
// @Failure      403 {object} handler.ErrorResponse "초대 코드 불일치"
// @Failure      429 {object} handler.ErrorResponse "요청 과다"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	// " "으로 입력되는 케이스 방지
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Username and Password cannot be empty"})
		return
	}

	if err := h.accounts.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User exists"})
			return
		}
		abortWithError(c, err, "Failed to create user")
		return
	}

	logging.FromCtx(c.Request.Context()).Info().Str("user", req.Username).Msg("Register(): user created")
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// Login godoc
// @Summary      로그인 (Login)
// @Description  사용자명과 비밀번호로 로그인하고 JWT 토큰을 발급받습니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.CredentialsRequest true "로그인 요청 정보"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      401 {object} handler.ErrorResponse "인증 실패 (자격 증명 오류)"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	if err := h.accounts.Verify(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrEmptyCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Wrong credentials"})
			return
		}
		abortWithError(c, err, "Failed to verify credentials")
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		abortWithError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, LoginSuccessResponse{Token: token})
}
