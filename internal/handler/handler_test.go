package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeraAssistant/internal/apperror"
	"LeraAssistant/internal/assistant"
	"LeraAssistant/internal/auth"
	"LeraAssistant/internal/document"
	"LeraAssistant/internal/models"
	"LeraAssistant/internal/storage"
)

type fakeAssistant struct {
	chatErr  error
	voiceErr error
	messages []string
	uploads  []string
	topics   []string
	history  []models.MemoryEntry
}

func (f *fakeAssistant) Chat(_ context.Context, username, message string) (assistant.Reply, error) {
	if f.chatErr != nil {
		return assistant.Reply{}, f.chatErr
	}
	f.messages = append(f.messages, username+":"+message)
	return assistant.Reply{Text: "Merhaba " + username, AudioPath: "data/audio/a.mp3"}, nil
}

func (f *fakeAssistant) Voice(_ context.Context, username string, upload io.Reader, ext string) (assistant.VoiceReply, error) {
	if f.voiceErr != nil {
		return assistant.VoiceReply{}, f.voiceErr
	}
	data, _ := io.ReadAll(upload)
	f.uploads = append(f.uploads, string(data)+ext)
	return assistant.VoiceReply{Reply: assistant.Reply{Text: "duydum", AudioPath: "data/audio/b.mp3"}, Transcript: "merhaba"}, nil
}

func (f *fakeAssistant) MathPDF(_ context.Context, topic string) (document.Document, error) {
	f.topics = append(f.topics, topic)
	return document.Document{Path: "data/pdf/c.pdf", Paragraphs: 3}, nil
}

func (f *fakeAssistant) History(_ context.Context, username string) ([]models.MemoryEntry, error) {
	var out []models.MemoryEntry
	for _, e := range f.history {
		if e.User == username {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubPinger struct{ err error }

func (s stubPinger) Health(context.Context) error { return s.err }

type env struct {
	router  *gin.Engine
	tokens  *auth.Issuer
	fake    *fakeAssistant
	dataDir string
}

func newEnv(t *testing.T, opts RouterOptions) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	users, err := storage.NewJSONUserStore(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	tokens, _ := auth.NewIssuer("test-secret", time.Hour)
	fake := &fakeAssistant{}

	opts.Logger = zerolog.New(io.Discard)
	h := New(auth.NewCredentials(users), tokens, fake, stubPinger{}, dir)
	return &env{router: NewRouter(h, opts), tokens: tokens, fake: fake, dataDir: dir}
}

func (e *env) do(method, path string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) bearer(t *testing.T, username string) map[string]string {
	t.Helper()
	token, err := e.tokens.Issue(username)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func jsonBody(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t, RouterOptions{})

	w := e.do(http.MethodPost, "/register", jsonBody(CredentialsRequest{"alice", "pw1"}), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = e.do(http.MethodPost, "/register", jsonBody(CredentialsRequest{"alice", "pw2"}), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User exists"}`, w.Body.String())

	w = e.do(http.MethodPost, "/login", jsonBody(CredentialsRequest{"alice", "pw2"}), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Wrong credentials"}`, w.Body.String())

	w = e.do(http.MethodPost, "/login", jsonBody(CredentialsRequest{"alice", "pw1"}), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginSuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	username, err := e.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestRegister_InvalidBody(t *testing.T) {
	e := newEnv(t, RouterOptions{})

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/register", strings.NewReader("{"), nil).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/register", jsonBody(CredentialsRequest{" ", "pw"}), nil).Code)
}

func TestRegister_InviteCode(t *testing.T) {
	e := newEnv(t, RouterOptions{InviteCode: "davet"})

	body := CredentialsRequest{"alice", "pw1"}
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/register", jsonBody(body), nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodPost, "/register", jsonBody(body), map[string]string{"X-Invite-Code": "davet"}).Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newEnv(t, RouterOptions{})

	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/chat"},
		{http.MethodPost, "/voice"},
		{http.MethodPost, "/math-pdf?topic=x"},
		{http.MethodGet, "/history"},
	} {
		w := e.do(r.method, r.path, nil, map[string]string{"Authorization": "Bearer not-a-token"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, r.path)
		assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
	}
	assert.Empty(t, e.fake.messages)
}

func TestChat(t *testing.T) {
	e := newEnv(t, RouterOptions{})

	w := e.do(http.MethodPost, "/chat", jsonBody(ChatRequest{Message: "merhaba"}), e.bearer(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"Merhaba alice","audio":"data/audio/a.mp3"}`, w.Body.String())
	assert.Equal(t, []string{"alice:merhaba"}, e.fake.messages)
}

func TestChat_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.Retryable("llm", errors.New("down")), http.StatusServiceUnavailable},
		{apperror.Fatal("llm", errors.New("bad")), http.StatusBadGateway},
		{apperror.Fatal("assistant.Chat", assistant.ErrEmptyMessage), http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		e := newEnv(t, RouterOptions{})
		e.fake.chatErr = tt.err
		w := e.do(http.MethodPost, "/chat", jsonBody(ChatRequest{Message: "x"}), e.bearer(t, "alice"))
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func multipartFile(t *testing.T, field, name, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, _ = fw.Write([]byte(content))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestVoice(t *testing.T) {
	e := newEnv(t, RouterOptions{})

	body, ct := multipartFile(t, "file", "clip.WAV", "RIFF")
	header := e.bearer(t, "alice")
	header["Content-Type"] = ct
	w := e.do(http.MethodPost, "/voice", body, header)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"duydum","audio":"data/audio/b.mp3","transcript":"merhaba"}`, w.Body.String())
	assert.Equal(t, []string{"RIFF.wav"}, e.fake.uploads)

	body, ct = multipartFile(t, "file", "clip.exe", "MZ")
	header["Content-Type"] = ct
	e.do(http.MethodPost, "/voice", body, header)
	assert.Equal(t, "MZ.wav", e.fake.uploads[1])
}

func TestVoice_Errors(t *testing.T) {
	e := newEnv(t, RouterOptions{})
	header := e.bearer(t, "alice")

	body, ct := multipartFile(t, "other", "clip.wav", "RIFF")
	header["Content-Type"] = ct
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/voice", body, header).Code)

	e.fake.voiceErr = apperror.Fatal("assistant.Voice", fmt.Errorf("%w: %w", assistant.ErrUnreadableAudio, assistant.ErrNoSpeech))
	body, ct = multipartFile(t, "file", "clip.wav", "noise")
	header["Content-Type"] = ct
	assert.Equal(t, http.StatusUnprocessableEntity, e.do(http.MethodPost, "/voice", body, header).Code)

	e.fake.voiceErr = apperror.Retryable("stt", errors.New("unavailable"))
	body, ct = multipartFile(t, "file", "clip.wav", "noise")
	header["Content-Type"] = ct
	assert.Equal(t, http.StatusServiceUnavailable, e.do(http.MethodPost, "/voice", body, header).Code)

	// 음성 인식 이후 모델 단계의 치명적 오류는 502
	e.fake.voiceErr = apperror.Fatal("llm.Generate", errors.New("decode response"))
	body, ct = multipartFile(t, "file", "clip.wav", "RIFF")
	header["Content-Type"] = ct
	w := e.do(http.MethodPost, "/voice", body, header)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Voice failed"}`, w.Body.String())
}

func TestMathPDF(t *testing.T) {
	e := newEnv(t, RouterOptions{})
	header := e.bearer(t, "alice")

	w := e.do(http.MethodPost, "/math-pdf?topic="+url.QueryEscape("Pisagor teoremi"), nil, header)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pdf":"data/pdf/c.pdf"}`, w.Body.String())

	header["Content-Type"] = "application/x-www-form-urlencoded"
	w = e.do(http.MethodPost, "/math-pdf", strings.NewReader("topic=Fermat"), header)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Pisagor teoremi", "Fermat"}, e.fake.topics)

	w = e.do(http.MethodPost, "/math-pdf", nil, e.bearer(t, "alice"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistory(t *testing.T) {
	e := newEnv(t, RouterOptions{})
	e.fake.history = []models.MemoryEntry{
		{User: "alice", Question: "merhaba", Answer: "selam"},
		{User: "bob", Question: "2+2", Answer: "4"},
	}

	w := e.do(http.MethodGet, "/history", nil, e.bearer(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"history":[{"user":"alice","question":"merhaba","answer":"selam"}]}`, w.Body.String())

	w = e.do(http.MethodGet, "/history", nil, e.bearer(t, "carol"))
	assert.JSONEq(t, `{"history":[]}`, w.Body.String())
}

func TestServeFile(t *testing.T) {
	e := newEnv(t, RouterOptions{})
	name := "1b4e28ba-2fa1-11d2-883f-0016d3cca427.mp3"
	require.NoError(t, os.WriteFile(filepath.Join(e.dataDir, name), []byte("ID3"), 0o644))

	w := e.do(http.MethodGet, "/files/"+name, nil, e.bearer(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ID3", w.Body.String())

	token, _ := e.tokens.Issue("alice")
	w = e.do(http.MethodGet, "/files/"+name+"?token="+token, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/files/users.json", nil, e.bearer(t, "alice"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodGet, "/files/2c4e28ba-2fa1-11d2-883f-0016d3cca427.pdf", nil, e.bearer(t, "alice"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, _ := auth.NewIssuer("s", time.Hour)

	for _, tt := range []struct {
		pinger Pinger
		want   int
	}{
		{stubPinger{}, http.StatusOK},
		{stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{nil, http.StatusOK},
	} {
		h := New(nil, tokens, &fakeAssistant{}, tt.pinger)
		r := NewRouter(h, RouterOptions{Logger: zerolog.New(io.Discard)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, tt.want, w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	e := newEnv(t, RouterOptions{RatePerMin: 1, RateBurst: 1})

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/login", jsonBody(CredentialsRequest{"x", "y"}), nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, e.do(http.MethodPost, "/login", jsonBody(CredentialsRequest{"x", "y"}), nil).Code)
}

func TestChatWebSocket(t *testing.T) {
	e := newEnv(t, RouterOptions{})
	srv := httptest.NewServer(e.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?token="

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"bad", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, _ := e.tokens.Issue("alice")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"merhaba"}`)))
	var msg WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, WSMessage{Reply: "Merhaba alice", Audio: "data/audio/a.mp3"}, msg)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("düz metin")))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, []string{"alice:merhaba", "alice:düz metin"}, e.fake.messages)
}

func TestParseWSMessage(t *testing.T) {
	assert.Equal(t, "selam", parseWSMessage([]byte(`{"message":"selam"}`)))
	assert.Equal(t, "selam", parseWSMessage([]byte("selam")))
	assert.Equal(t, `{"other":1}`, parseWSMessage([]byte(`{"other":1}`)))
}
