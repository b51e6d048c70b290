package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeRateLimit, 429, "rate limit exceeded for %q", "nike")
	assert.Equal(t, `rate_limit error (code 429): rate limit exceeded for "nike"`, err.Error())
}

func TestTypeOf(t *testing.T) {
	direct := New(ErrorTypeNetwork, 0, "connection reset")
	assert.Equal(t, ErrorTypeNetwork, TypeOf(direct))

	wrapped := fmt.Errorf("fetch failed: %w", direct)
	assert.Equal(t, ErrorTypeNetwork, TypeOf(wrapped))

	assert.Equal(t, ErrorTypeUnknown, TypeOf(stderrors.New("boom")))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(nil))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    bool
	}{
		{ErrorTypeNetwork, true},
		{ErrorTypeRateLimit, true},
		{ErrorTypeServerError, true},
		{ErrorTypeAuthWall, false},
		{ErrorTypeNotFound, false},
		{ErrorTypeParsing, false},
		{ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.errType))
		})
	}
}

func TestIsRetryableStatusCode(t *testing.T) {
	retryable := []int{0, 429, 500, 502, 503, 504, 599}
	for _, code := range retryable {
		assert.True(t, IsRetryableStatusCode(code), "code %d", code)
	}

	permanent := []int{200, 400, 401, 403, 404, 418}
	for _, code := range permanent {
		assert.False(t, IsRetryableStatusCode(code), "code %d", code)
	}
}
