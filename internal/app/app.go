/**
* Name: 			app.go
* Description: 		설정에 따라 저장소, 모델, 음성, 검색, PDF 구성요소를 만들고 HTTP 서버 실행
* Workflow: 		저장소 열기, llama-server 기동(선택), STT/TTS 연결, 라우터 구성, 종료 시 정리
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"LeraAssistant/internal/assistant"
	"LeraAssistant/internal/audio"
	"LeraAssistant/internal/auth"
	"LeraAssistant/internal/config"
	"LeraAssistant/internal/document"
	"LeraAssistant/internal/handler"
	"LeraAssistant/internal/llm"
	"LeraAssistant/internal/logging"
	"LeraAssistant/internal/search"
	"LeraAssistant/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Stores struct {
	Users  storage.UserStore
	Memory storage.MemoryStore
	closer io.Closer
}

func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// STORAGE_BACKEND에 따라 JSON 파일 또는 SQLite 저장소 열기
func OpenStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenDB(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Users:  storage.NewSQLiteUserStore(db),
			Memory: storage.NewSQLiteMemoryStore(db),
			closer: db,
		}, nil
	default:
		users, err := storage.NewJSONUserStore(cfg.Storage.UsersFile)
		if err != nil {
			return nil, err
		}
		memory, err := storage.NewJSONMemoryStore(cfg.Storage.MemoryFile)
		if err != nil {
			return nil, err
		}
		return &Stores{Users: users, Memory: memory}, nil
	}
}

type App struct {
	cfg     config.Config
	server  *http.Server
	closers []io.Closer
}

func New(ctx context.Context, cfg config.Config) (app *App, err error) {
	logger := logging.FromCtx(ctx)
	a := &App{cfg: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("New(): failed to open storage: %w", err)
	}
	a.closers = append(a.closers, stores)

	tokens, usedDefault := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if usedDefault {
		logger.Warn().Msg("New(): JWT_SECRET_KEY is not set, using the built-in default key")
	}

	// 모델 서버: LLM_SERVER_BIN이 있으면 직접 띄우고, 없으면 LLM_BASE_URL 사용
	baseURL := cfg.LLM.BaseURL
	if cfg.LLM.ServerBin != "" {
		local, err := llm.StartLocalServer(ctx, llm.LocalServerOptions{
			Bin:       cfg.LLM.ServerBin,
			ModelPath: cfg.LLM.ModelPath,
			CtxLen:    cfg.LLM.CtxLen,
			Threads:   cfg.LLM.Threads,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, local)
		baseURL = local.BaseURL()
	}
	model := llm.NewClient(baseURL, cfg.LLM.Timeout)

	audioDir := filepath.Join(cfg.DataDir, "audio")
	uploadDir := filepath.Join(cfg.DataDir, "uploads")
	pdfDir := filepath.Join(cfg.DataDir, "pdf")

	stt, err := llm.NewSTTClient(ctx, cfg.Speech.CredentialsFile)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, stt)

	tts, err := llm.NewTTSClient(ctx, cfg.Speech.CredentialsFile, audioDir, cfg.Speech.Language, cfg.Speech.Voice)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, tts)

	svc := assistant.NewService(assistant.Deps{
		Memory:      stores.Memory,
		Searcher:    search.NewClient(cfg.Search.Endpoint, cfg.Search.MaxRetries, cfg.Search.Timeout),
		Generator:   model,
		Transcriber: stt,
		Synthesizer: tts,
		Renderer:    document.NewRenderer(pdfDir, cfg.PDF.FontPath),
		Converter:   audio.NewConverter(cfg.Speech.FFmpegPath),
	}, assistant.Options{
		UploadDir:   uploadDir,
		ContextSize: cfg.Storage.ContextSize,
		MaxTokens:   cfg.LLM.MaxTokens,
		Language:    cfg.Speech.Language,
	})

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handler.New(auth.NewCredentials(stores.Users), tokens, svc, model, audioDir, uploadDir, pdfDir)
	router := handler.NewRouter(h, handler.RouterOptions{
		Logger:        *logger,
		CORSOrigins:   cfg.Auth.CORSOrigins,
		InviteCode:    cfg.Auth.InviteCode,
		RatePerMin:    cfg.Auth.RatePerMin,
		RateBurst:     cfg.Auth.RateBurst,
		EnableSwagger: true,
	})

	a.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().
		Str("storage", cfg.Storage.Backend).
		Str("llm", baseURL).
		Bool("ffmpeg", cfg.Speech.FFmpegPath != "").
		Bool("invite_only", cfg.Auth.InviteCode != "").
		Msg("New(): components ready")
	return a, nil
}

// ctx가 끝날 때까지 서버 실행, 이후 정상 종료
func (a *App) Run(ctx context.Context) error {
	logger := logging.FromCtx(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", a.cfg.Addr).Msg("Run(): HTTP server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Run(): shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("Run(): shutdown failed: %w", err)
	}
	return nil
}

// 역순으로 자원 정리
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
