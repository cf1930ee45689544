package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir string `env:"DATA_DIR" envDefault:"data"`
	Debug   bool   `env:"DEBUG" envDefault:"false"`

	Auth    AuthConfig
	Storage StorageConfig
	LLM     LLMConfig
	Speech  SpeechConfig
	Search  SearchConfig
	PDF     PDFConfig
}

type AuthConfig struct {
	// 비어 있으면 auth.NewIssuer의 기본 키 사용
	JWTSecret   string        `env:"JWT_SECRET_KEY"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	InviteCode  string        `env:"SIGNUP_INVITE_CODE"`
	RatePerMin  int           `env:"AUTH_RATE_PER_MIN" envDefault:"30"`
	RateBurst   int           `env:"AUTH_RATE_BURST" envDefault:"10"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:","`
}

type StorageConfig struct {
	Backend     string `env:"STORAGE_BACKEND" envDefault:"json"`
	UsersFile   string `env:"USERS_FILE"`
	MemoryFile  string `env:"MEMORY_FILE"`
	SQLitePath  string `env:"SQLITE_PATH"`
	ContextSize int    `env:"MEMORY_CONTEXT_SIZE" envDefault:"3"`
}

type LLMConfig struct {
	BaseURL   string        `env:"LLM_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	ModelPath string        `env:"LLM_MODEL_PATH" envDefault:"models/Phi-3-mini-4k-instruct-q4.gguf"`
	ServerBin string        `env:"LLM_SERVER_BIN"`
	CtxLen    int           `env:"LLM_CTX_LEN" envDefault:"2048"`
	Threads   int           `env:"LLM_THREADS" envDefault:"4"`
	MaxTokens int           `env:"LLM_MAX_TOKENS" envDefault:"300"`
	Timeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"5m"`
}

type SpeechConfig struct {
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Language        string `env:"SPEECH_LANGUAGE" envDefault:"tr-TR"`
	Voice           string `env:"TTS_VOICE" envDefault:"tr-TR-Wavenet-A"`
	FFmpegPath      string `env:"FFMPEG_PATH"`
}

type SearchConfig struct {
	Endpoint   string        `env:"SEARCH_ENDPOINT" envDefault:"https://api.duckduckgo.com/"`
	MaxRetries uint64        `env:"SEARCH_MAX_RETRIES" envDefault:"0"`
	Timeout    time.Duration `env:"SEARCH_TIMEOUT" envDefault:"0s"`
}

type PDFConfig struct {
	FontPath string `env:"PDF_FONT_PATH"`
}

// envFile을 환경 변수로 올린 뒤 Config로 파싱, 파일이 없으면 무시
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.Storage.UsersFile == "" {
		c.Storage.UsersFile = filepath.Join(c.DataDir, "users.json")
	}
	if c.Storage.MemoryFile == "" {
		c.Storage.MemoryFile = filepath.Join(c.DataDir, "memory.json")
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.DataDir, "lera.db")
	}

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if c.Storage.ContextSize < 1 {
		return fmt.Errorf("MEMORY_CONTEXT_SIZE must be >= 1")
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be >= 0")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be > 0")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be > 0")
	}
	return nil
}
