package models

// 회원 사용자 모델
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// users.json 문서의 값 형태: username -> {"password_hash": ...}
type StoredCredential struct {
	PasswordHash string `json:"password_hash"`
}
