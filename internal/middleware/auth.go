package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const UsernameKey = "username"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authorization: Bearer 헤더 검증, 실패 사유는 구분하지 않음
// 헤더가 없으면 ?token= 쿼리 사용 (웹 오디오 태그용)
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		username, err := verifier.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(UsernameKey, username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return c.Query("token")
	}
	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(tokenString)
}
