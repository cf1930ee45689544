/**
* Name: 			convert.go
* Description: 		업로드된 음성 파일을 STT 입력 형식으로 변환
* Workflow: 		FFmpeg 실행, 16kHz mono LINEAR16 WAV 생성
 */

package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"LeraAssistant/internal/apperror"
	"LeraAssistant/internal/artifact"
	"LeraAssistant/internal/logging"
)

const (
	sampleRate = "16000"
	channels   = "1"
)

// ffmpeg 경로가 비어 있으면 변환 없이 원본을 그대로 사용
type Converter struct {
	ffmpeg string
}

func NewConverter(ffmpegPath string) *Converter {
	return &Converter{ffmpeg: ffmpegPath}
}

func (c *Converter) Enabled() bool {
	return c != nil && c.ffmpeg != ""
}

// src를 같은 디렉터리의 새 .wav 파일로 변환하고 경로 반환
func (c *Converter) ToWAV(ctx context.Context, src string) (string, error) {
	if !c.Enabled() {
		return src, nil
	}
	logger := logging.FromCtx(ctx)

	dst, err := artifact.NewPath(filepath.Dir(src), ".wav")
	if err != nil {
		return "", err
	}

	args := []string{
		"-y", // 덮어쓰기
		"-i", src,
		"-ac", channels,
		"-ar", sampleRate,
		"-c:a", "pcm_s16le",
		dst,
	}
	cmd := exec.CommandContext(ctx, c.ffmpeg, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Error().Err(err).Str("src", src).Bytes("output", tailBytes(output, 512)).Msg("ToWAV(): FFmpeg conversion failed")
		if _, ok := err.(*exec.ExitError); ok {
			// ffmpeg가 입력을 읽지 못함 = 손상된 오디오
			return "", apperror.Fatal("audio.ToWAV", fmt.Errorf("ffmpeg: %w", err))
		}
		return "", fmt.Errorf("audio.ToWAV: %w", err)
	}

	logger.Debug().Str("src", src).Str("dst", dst).Msg("ToWAV(): conversion successful")
	return dst, nil
}

func tailBytes(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}
