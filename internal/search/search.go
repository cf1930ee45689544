/**
* Name: 			search.go
* Description: 		공개 검색 요약 API(DuckDuckGo Instant Answer) 조회
* Workflow: 		트리거 단어 확인, GET 요청, AbstractText 추출
 */

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sethvargo/go-retry"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"LeraAssistant/internal/apperror"
	"LeraAssistant/internal/logging"
)

const DefaultEndpoint = "https://api.duckduckgo.com/"

// "오늘" / "최신"을 뜻하는 트리거 단어
var triggerWords = []string{"bugün", "güncel"}

var turkishLower = cases.Lower(language.Turkish)

// 입력에 트리거 단어가 있을 때만 검색
func Triggered(text string) bool {
	lowered := turkishLower.String(text)
	for _, w := range triggerWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries uint64
	policy     *bluemonday.Policy
}

// maxRetries가 0이면 요청은 정확히 한 번, timeout이 0이면 제한 없음
func NewClient(endpoint string, maxRetries uint64, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		policy:     bluemonday.StrictPolicy(),
	}
}

type instantAnswer struct {
	AbstractText string `json:"AbstractText"`
}

// 요약 텍스트 반환, 없으면 ""
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	logger := logging.FromCtx(ctx)

	var abstract string
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(300*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		text, err := c.searchOnce(ctx, query)
		if err != nil {
			if apperror.IsRetryable(err) {
				logger.Warn().Err(err).Msg("Search(): retryable failure")
				return retry.RetryableError(err)
			}
			return err
		}
		abstract = text
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Debug().Str("query", query).Int("abstract_len", len(abstract)).Msg("Search(): done")
	return abstract, nil
}

func (c *Client) searchOnce(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", apperror.Fatal("search", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Retryable("search", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return "", apperror.Retryable("search", fmt.Errorf("status %s", resp.Status))
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperror.Fatal("search", fmt.Errorf("status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Retryable("search", err)
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return "", apperror.Fatal("search", fmt.Errorf("decode response: %w", err))
	}
	// StrictPolicy는 엔티티를 이스케이프하므로 프롬프트용으로 되돌림
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(answer.AbstractText))), nil
}
