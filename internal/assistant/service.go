/**
* Name: 			service.go
* Description: 		대화, 음성, 수학 PDF 처리 흐름
* Workflow: 		메모리 조회, 조건부 검색, 모델 호출, 메모리 기록, 음성 합성
 */

package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"LeraAssistant/internal/apperror"
	"LeraAssistant/internal/artifact"
	"LeraAssistant/internal/document"
	"LeraAssistant/internal/logging"
	"LeraAssistant/internal/models"
	"LeraAssistant/internal/prompt"
	"LeraAssistant/internal/search"
	"LeraAssistant/internal/storage"
)

const (
	DefaultContextSize = 3
	DefaultMaxTokens   = 300
	DefaultLanguage    = "tr-TR"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrEmptyTopic   = errors.New("topic is empty")
	ErrNoSpeech     = errors.New("no speech recognized")
	// 변환/인식 단계에서 음성을 읽지 못함, Chat 이후 오류에는 붙지 않음
	ErrUnreadableAudio = errors.New("unreadable audio")
)

type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

type Renderer interface {
	Render(text string) (document.Document, error)
}

// 업로드 음성을 인식 가능한 형식으로 변환, nil이면 원본 그대로 사용
type Converter interface {
	ToWAV(ctx context.Context, src string) (string, error)
}

type Deps struct {
	Memory      storage.MemoryStore
	Searcher    Searcher
	Generator   Generator
	Transcriber Transcriber
	Synthesizer Synthesizer
	Renderer    Renderer
	Converter   Converter
}

type Options struct {
	UploadDir   string
	ContextSize int
	MaxTokens   int
	Language    string
}

type Service struct {
	Deps
	opts Options
}

type Reply struct {
	Text      string `json:"reply"`
	AudioPath string `json:"audio"`
}

// VoiceReply는 인식된 문장을 함께 돌려줌
type VoiceReply struct {
	Reply
	Transcript string `json:"transcript"`
}

func NewService(deps Deps, opts Options) *Service {
	if opts.ContextSize <= 0 {
		opts.ContextSize = DefaultContextSize
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	return &Service{Deps: deps, opts: opts}
}

// 한 턴의 대화 처리
// 문맥은 기록 전에 읽으므로 이번 질문은 포함되지 않음
func (s *Service) Chat(ctx context.Context, username, message string) (Reply, error) {
	logger := logging.FromCtx(ctx)

	if strings.TrimSpace(message) == "" {
		return Reply{}, apperror.Fatal("assistant.Chat", ErrEmptyMessage)
	}

	history, err := s.Memory.Recent(ctx, s.opts.ContextSize)
	if err != nil {
		return Reply{}, err
	}

	var web string
	if s.Searcher != nil && search.Triggered(message) {
		web, err = s.Searcher.Search(ctx, message)
		if err != nil {
			logger.Error().Err(err).Str("user", username).Msg("Chat(): search failed")
			return Reply{}, err
		}
	}

	text, err := s.Generator.Generate(ctx, prompt.Chat(prompt.ChatInput{
		Username: username,
		Web:      web,
		History:  history,
		Question: message,
	}), s.opts.MaxTokens)
	if err != nil {
		logger.Error().Err(err).Str("user", username).Msg("Chat(): generation failed")
		return Reply{}, err
	}

	if err := s.Memory.Append(ctx, models.MemoryEntry{User: username, Question: message, Answer: text}); err != nil {
		return Reply{}, err
	}

	audioPath, err := s.Synthesizer.Synthesize(ctx, text)
	if err != nil {
		logger.Error().Err(err).Str("user", username).Msg("Chat(): speech synthesis failed")
		return Reply{}, err
	}

	logger.Info().Str("user", username).Bool("web", web != "").Int("context", len(history)).Msg("Chat(): reply ready")
	return Reply{Text: text, AudioPath: audioPath}, nil
}

// 업로드된 음성을 저장, 인식한 뒤 Chat과 같은 경로로 처리
func (s *Service) Voice(ctx context.Context, username string, upload io.Reader, ext string) (VoiceReply, error) {
	logger := logging.FromCtx(ctx)

	if ext == "" {
		ext = ".wav"
	}
	saved, err := artifact.Copy(s.opts.UploadDir, ext, upload)
	if err != nil {
		return VoiceReply{}, err
	}
	logger.Debug().Str("user", username).Str("path", saved).Msg("Voice(): upload saved")

	audioPath := saved
	if s.Converter != nil {
		audioPath, err = s.Converter.ToWAV(ctx, saved)
		if err != nil {
			return VoiceReply{}, unreadable(err)
		}
	}

	text, err := s.Transcriber.Transcribe(ctx, audioPath, s.opts.Language)
	if err != nil {
		return VoiceReply{}, unreadable(err)
	}
	if strings.TrimSpace(text) == "" {
		return VoiceReply{}, apperror.Fatal("assistant.Voice", fmt.Errorf("%w: %w", ErrUnreadableAudio, ErrNoSpeech))
	}

	reply, err := s.Chat(ctx, username, text)
	if err != nil {
		return VoiceReply{}, err
	}
	return VoiceReply{Reply: reply, Transcript: text}, nil
}

// 주제에 대한 증명을 생성해서 PDF로 저장
// 대화 메모리에는 기록하지 않음
func (s *Service) MathPDF(ctx context.Context, topic string) (document.Document, error) {
	logger := logging.FromCtx(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return document.Document{}, apperror.Fatal("assistant.MathPDF", ErrEmptyTopic)
	}

	text, err := s.Generator.Generate(ctx, prompt.Proof(topic), s.opts.MaxTokens)
	if err != nil {
		return document.Document{}, err
	}

	doc, err := s.Renderer.Render(text)
	if err != nil {
		return document.Document{}, err
	}
	logger.Info().Str("topic", topic).Str("path", doc.Path).Int("paragraphs", doc.Paragraphs).Msg("MathPDF(): document ready")
	return doc, nil
}

// 재시도해도 소용없는 오디오 오류만 ErrUnreadableAudio로 표시
func unreadable(err error) error {
	if !apperror.IsFatal(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnreadableAudio, err)
}

func (s *Service) History(ctx context.Context, username string) ([]models.MemoryEntry, error) {
	return s.Memory.ByUser(ctx, username)
}
