/* JWT 토큰 발급 및 검증 */

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour
	tokenIssuer     = "lera-api"

	// JWT_SECRET_KEY가 없을 때 쓰는 기본 키 (권장하지 않음)
	defaultSecretKey = "default_secret_key"
)

// 검증 실패 사유(만료, 서명 오류, 형식 오류)는 모두 이 에러 하나로 합쳐짐
var ErrUnauthorized = errors.New("unauthorized")

// Claims 구조체 정의, JWT 페이로드에 사용자명 포함
type Claims struct {
	Username string `json:"user"`
	jwt.RegisteredClaims
}

type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// secret이 비어 있으면 기본 키 사용, usedDefault로 호출자에게 알림
func NewIssuer(secret string, ttl time.Duration) (issuer *Issuer, usedDefault bool) {
	if secret == "" {
		secret = defaultSecretKey
		usedDefault = true
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{key: []byte(secret), ttl: ttl, now: time.Now}, usedDefault
}

// JWT 토큰 생성
func (i *Issuer) Issue(username string) (string, error) {
	now := i.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   "user_auth_token",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("Issue(): failed to sign token: %w", err)
	}
	return tokenString, nil
}

// JWT 토큰 검증, 성공 시 사용자명 반환
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	if claims.Username == "" {
		return "", ErrUnauthorized
	}
	return claims.Username, nil
}
