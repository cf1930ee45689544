/**
* Name: 			logger.go
* Description: 		zerolog 콘솔 로거 생성 및 컨텍스트 전달
 */
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// 전역 콘솔 로거 설정, 로거를 담은 컨텍스트와 flush 함수 반환
func NewContextWithLogger(ctx context.Context, debug bool) (context.Context, func()) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// 링 버퍼, 가득 차면 오래된 로그부터 버림
	wr := diode.NewWriter(os.Stdout, 1000, 10*time.Millisecond, func(missed int) {
		fmt.Printf("Logger Dropped %d messages\n", missed)
	})

	logger := New(wr)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	return logger.WithContext(ctx), func() {
		wr.Close()
	}
}

// w에 쓰는 콘솔 로거
func New(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// 컨텍스트의 로거, 없으면 zerolog.DefaultContextLogger
// NewContextWithLogger 호출 전에는 비활성 로거
func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}
