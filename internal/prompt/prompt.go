/**
* Name: 			prompt.go
* Description: 		모델에 보낼 프롬프트 구성
* Workflow: 		페르소나, 웹 요약, 최근 대화, 질문을 한 문자열로 결합
 */

package prompt

import (
	"fmt"
	"strings"

	"LeraAssistant/internal/models"
)

const (
	chatFormat  = "Sen Lera'sın.\nKullanıcı: %s\nİnternet: %s\nÖnceki konuşma:\n%s\nSoru: %s\n"
	proofFormat = "%s için detaylı matematiksel ispat yaz."
)

type ChatInput struct {
	Username string
	Web      string
	History  []models.MemoryEntry
	Question string
}

func Chat(in ChatInput) string {
	return fmt.Sprintf(chatFormat, in.Username, in.Web, FormatHistory(in.History), in.Question)
}

func Proof(topic string) string {
	return fmt.Sprintf(proofFormat, topic)
}

// 한 줄에 항목 하나, 삽입 순서 유지
func FormatHistory(entries []models.MemoryEntry) string {
	if len(entries) == 0 {
		return "-"
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s] Soru: %s | Cevap: %s", e.User, oneLine(e.Question), oneLine(e.Answer))
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
