package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain", base, KindGeneric},
		{"retryable", Retryable("search", base), KindRetryable},
		{"fatal", Fatal("stt", base), KindFatal},
		{"wrapped", fmt.Errorf("chat: %w", Retryable("llm", base)), KindRetryable},
		{"nil", nil, KindGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_UnwrapAndMessage(t *testing.T) {
	base := errors.New("connection refused")
	err := Retryable("llm.Generate", base)

	assert.ErrorIs(t, err, base)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsFatal(err))
	assert.Equal(t, "llm.Generate: retryable: connection refused", err.Error())
}
