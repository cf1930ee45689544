package llm

import (
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"LeraAssistant/internal/apperror"
)

// 인증 파일이 없으면 ADC(Application Default Credentials) 사용
func clientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

// gRPC 상태 코드로 재시도 가능 / 불가 구분
func classifyRPC(op string, err error) error {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return apperror.Fatal(op, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return apperror.Retryable(op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
