/**
* Name: 			client.go
* Description: 		로컬 LLM 서버(llama.cpp server) 연결
* Workflow: 		프롬프트 전송, 생성 텍스트 수신
 */

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"LeraAssistant/internal/apperror"
	"LeraAssistant/internal/logging"
)

const DefaultBaseURL = "http://127.0.0.1:8000"

type CompletionRequest struct {
	Prompt   string `json:"prompt"`
	NPredict int    `json:"n_predict"`
	Stream   bool   `json:"stream"`
}

type CompletionResponse struct {
	Content string `json:"content"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	// 모델은 한 번에 하나의 요청만 처리
	mu sync.Mutex
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// 프롬프트를 보내고 maxTokens 이내로 생성된 텍스트를 받음 (블로킹)
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	logger := logging.FromCtx(ctx)

	reqBody, err := json.Marshal(CompletionRequest{Prompt: prompt, NPredict: maxTokens})
	if err != nil {
		return "", apperror.Fatal("llm.Generate", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	started := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(reqBody))
	if err != nil {
		return "", apperror.Fatal("llm.Generate", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Retryable("llm.Generate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := fmt.Errorf("LLM server completion failed with status: %s: %s", resp.Status, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 500 {
			return "", apperror.Retryable("llm.Generate", statusErr)
		}
		return "", apperror.Fatal("llm.Generate", statusErr)
	}

	var completion CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", apperror.Fatal("llm.Generate", fmt.Errorf("decode completion: %w", err))
	}

	logger.Debug().
		Dur("took", time.Since(started)).
		Int("chars", len(completion.Content)).
		Msg("Generate(): completion received")
	return completion.Content, nil
}

// /health 가 200이면 준비 완료
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New("LLM server not ready: " + resp.Status)
	}
	return nil
}
