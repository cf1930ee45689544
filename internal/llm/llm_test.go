package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"LeraAssistant/internal/apperror"
)

func TestClient_Generate(t *testing.T) {
	var got CompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/completion", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(CompletionResponse{Content: "Merhaba!"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	text, err := c.Generate(context.Background(), "Soru: merhaba", 300)
	require.NoError(t, err)

	assert.Equal(t, "Merhaba!", text)
	assert.Equal(t, "Soru: merhaba", got.Prompt)
	assert.Equal(t, 300, got.NPredict)
	assert.False(t, got.Stream)
}

func TestClient_GenerateErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperror.Kind
	}{
		{"server error", http.StatusServiceUnavailable, "loading model", apperror.KindRetryable},
		{"bad request", http.StatusBadRequest, "bad prompt", apperror.KindFatal},
		{"bad json", http.StatusOK, "not json", apperror.KindFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "p", 10)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperror.KindOf(err))
		})
	}
}

func TestClient_GenerateUnreachableIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Generate(context.Background(), "p", 10)
	require.Error(t, err)
	assert.True(t, apperror.IsRetryable(err))
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second).Health(context.Background()))
}

func TestClassifyRPC(t *testing.T) {
	assert.True(t, apperror.IsFatal(classifyRPC("stt", status.Error(codes.InvalidArgument, "bad audio"))))
	assert.True(t, apperror.IsRetryable(classifyRPC("stt", status.Error(codes.Unavailable, "down"))))
	assert.True(t, apperror.IsRetryable(classifyRPC("tts", status.Error(codes.DeadlineExceeded, "slow"))))

	plain := classifyRPC("tts", errors.New("boom"))
	assert.Equal(t, apperror.KindGeneric, apperror.KindOf(plain))
}

func TestSTTClient_TranscribeUnreadableFile(t *testing.T) {
	s := &STTClient{}

	_, err := s.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "tr-TR")
	assert.True(t, apperror.IsFatal(err))

	empty := filepath.Join(t.TempDir(), "empty.wav")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = s.Transcribe(context.Background(), empty, "tr-TR")
	assert.True(t, apperror.IsFatal(err))
	assert.ErrorIs(t, err, ErrEmptyAudio)
}
