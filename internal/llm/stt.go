/**
* Name: 			stt.go
* Description: 		Google STT 연결 및 파일 단위 인식
* Workflow: 		오디오 파일 읽기, Recognize 요청, 텍스트 수신
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"LeraAssistant/internal/apperror"
	"LeraAssistant/internal/logging"
)

var ErrEmptyAudio = errors.New("audio file is empty")

type STTClient struct {
	client *speech.Client
}

// STT 클라이언트 초기화
func NewSTTClient(ctx context.Context, credentialsFile string) (*STTClient, error) {
	client, err := speech.NewClient(ctx, clientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("NewSTTClient(): failed to create speech client: %w", err)
	}
	return &STTClient{client: client}, nil
}

// 저장된 오디오 파일을 지정 언어로 인식
// WAV/FLAC 헤더가 있으면 인코딩과 샘플레이트는 서버가 판단함
func (s *STTClient) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	logger := logging.FromCtx(ctx)

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", apperror.Fatal("stt.Transcribe", err)
	}
	if len(data) == 0 {
		return "", apperror.Fatal("stt.Transcribe", ErrEmptyAudio)
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	}

	resp, err := s.client.Recognize(ctx, req)
	if err != nil {
		logger.Error().Err(err).Str("path", audioPath).Msg("Transcribe(): Recognize failed")
		return "", classifyRPC("stt.Transcribe", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		parts = append(parts, strings.TrimSpace(result.Alternatives[0].Transcript))
	}
	text := strings.Join(parts, " ")
	logger.Debug().Str("text", text).Msg("Transcribe(): final result")
	return text, nil
}

// STT 클라이언트 종료
func (s *STTClient) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
