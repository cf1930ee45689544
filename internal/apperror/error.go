/**
* Name: 			error.go
* Description: 		외부 연동(모델, 검색, 음성) 오류 분류
* Workflow: 		게이트웨이가 Retryable / Fatal로 감싸고, 핸들러가 상태 코드로 변환
 */
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindGeneric Kind = iota
	// 네트워크 오류, 시간 초과, 상위 5xx
	KindRetryable
	// 손상된 입력, 해석할 수 없는 응답
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindRetryable:
		return "retryable"
	case KindFatal:
		return "fatal"
	default:
		return "generic"
	}
}

type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func Retryable(op string, err error) error {
	return &Error{Op: op, Kind: KindRetryable, Err: err}
}

func Fatal(op string, err error) error {
	return &Error{Op: op, Kind: KindFatal, Err: err}
}

// 체인에서 가장 바깥 *Error의 Kind
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

func IsRetryable(err error) bool { return KindOf(err) == KindRetryable }

func IsFatal(err error) bool { return KindOf(err) == KindFatal }
