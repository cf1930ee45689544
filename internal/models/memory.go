package models

// 공유 대화 기록의 질문/답변 한 쌍, 식별자 없이 기록 순서가 곧 순서
type MemoryEntry struct {
	User     string `json:"user"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
