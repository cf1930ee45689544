/**
* Name: 			tts.go
* Description: 		Google TTS 연결 및 음성 파일 저장
* Workflow: 		텍스트 전송, MP3 오디오 수신, 데이터 디렉터리에 기록
 */

package llm

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"LeraAssistant/internal/artifact"
	"LeraAssistant/internal/logging"
)

// TTS 연결 정보
type TTSClient struct {
	client   *texttospeech.Client
	outDir   string
	language string
	voice    string
}

// TTS 클라이언트 초기화
func NewTTSClient(ctx context.Context, credentialsFile, outDir, language, voice string) (*TTSClient, error) {
	client, err := texttospeech.NewClient(ctx, clientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("NewTTSClient(): failed to create TTS client: %w", err)
	}
	return &TTSClient{
		client:   client,
		outDir:   outDir,
		language: language,
		voice:    voice,
	}, nil
}

// 텍스트를 음성으로 변환해서 새 .mp3 파일로 저장, 경로 반환
func (t *TTSClient) Synthesize(ctx context.Context, text string) (string, error) {
	audio, err := t.ConvertTextToAudio(ctx, text)
	if err != nil {
		return "", err
	}
	return artifact.Write(t.outDir, ".mp3", audio)
}

// 텍스트를 오디오로 변환
func (t *TTSClient) ConvertTextToAudio(ctx context.Context, text string) ([]byte, error) {
	logger := logging.FromCtx(ctx)

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: t.language,
			Name:         t.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := t.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("ConvertTextToAudio(): SynthesizeSpeech failed")
		return nil, classifyRPC("tts.Synthesize", err)
	}

	logger.Debug().Int("bytes", len(resp.AudioContent)).Msg("ConvertTextToAudio(): SynthesizeSpeech succeeded")
	return resp.AudioContent, nil
}

// TTS 클라이언트 종료
func (t *TTSClient) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
