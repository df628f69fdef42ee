package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

// =============================================================================
// Creation
// =============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errType ErrorType
		message string
	}{
		{name: "InvalidInput", errType: InvalidInput, message: "client_id가 설정되지 않았습니다"},
		{name: "NotFound", errType: NotFound, message: "엔드포인트를 찾을 수 없습니다"},
		{name: "Empty Message", errType: Internal, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.errType, tt.message)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, Is(err, tt.errType))
		})
	}
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(InvalidInput, "skill '%s'", "daily-quote")

	assert.EqualError(t, err, "[InvalidInput] skill 'daily-quote'")
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{Unknown, "Unknown"},
		{Internal, "Internal"},
		{System, "System"},
		{Unauthorized, "Unauthorized"},
		{InvalidInput, "InvalidInput"},
		{NotFound, "NotFound"},
		{ExecutionFailed, "ExecutionFailed"},
		{ParsingFailed, "ParsingFailed"},
		{Timeout, "Timeout"},
		{Unavailable, "Unavailable"},
		{ErrorType(99), "ErrorType(99)"},
		{ErrorType(-1), "ErrorType(-1)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

// =============================================================================
// Wrapping
// =============================================================================

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("StdError", func(t *testing.T) {
		wrapped := Wrap(errStd, Unavailable, "토큰 요청 실패")

		assert.EqualError(t, wrapped, "[Unavailable] 토큰 요청 실패: standard error")
		assert.True(t, Is(wrapped, Unavailable))
		assert.ErrorIs(t, wrapped, errStd)
	})

	t.Run("NilError", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "should be nil"))
		assert.Nil(t, Wrapf(nil, Internal, "should be %s", "nil"))
	})

	t.Run("Nested", func(t *testing.T) {
		err1 := New(Unauthorized, "invalid_client")
		err2 := Wrap(err1, ExecutionFailed, "토큰 발급 실패")
		err3 := Wrapf(err2, System, "skill '%s'", "a")

		assert.True(t, Is(err3, System))
		assert.True(t, Is(err3, ExecutionFailed))
		assert.True(t, Is(err3, Unauthorized))
		assert.False(t, Is(err3, Timeout))
		assert.Equal(t, Unauthorized, UnderlyingType(err3))
	})
}

func TestRootCause(t *testing.T) {
	t.Parallel()

	assert.Nil(t, RootCause(nil))
	assert.Equal(t, errStd, RootCause(errStd))

	err := Wrap(Wrap(context.DeadlineExceeded, Timeout, "a"), Unavailable, "b")
	assert.Equal(t, context.DeadlineExceeded, RootCause(err))
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, UnderlyingType(nil))
	assert.Equal(t, Unknown, UnderlyingType(errStd))
	assert.Equal(t, ParsingFailed, UnderlyingType(fmt.Errorf("outer: %w", New(ParsingFailed, "bad json"))))
}

func TestAs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(NotFound, "no endpoint"))

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, NotFound, appErr.Type())
	assert.Equal(t, "no endpoint", appErr.Message())
}

// =============================================================================
// Formatting
// =============================================================================

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	err := Wrap(errStd, System, "파일 읽기 실패")

	assert.Equal(t, "[System] 파일 읽기 실패: standard error", fmt.Sprintf("%s", err))
	assert.Equal(t, "[System] 파일 읽기 실패: standard error", fmt.Sprintf("%v", err))
	assert.Equal(t, `"[System] 파일 읽기 실패: standard error"`, fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "Stack trace:")
	assert.Contains(t, detailed, "errors_test.go")
	assert.Contains(t, detailed, "Caused by:")
	assert.Contains(t, detailed, "standard error")
}

func TestAppError_Stack(t *testing.T) {
	t.Parallel()

	err := New(Internal, "boom")

	var appErr *AppError
	require.True(t, As(err, &appErr))
	require.NotEmpty(t, appErr.Stack())
	assert.Equal(t, "errors_test.go", appErr.Stack()[0].File)
	assert.Contains(t, appErr.Stack()[0].Function, "TestAppError_Stack")
	assert.LessOrEqual(t, len(appErr.Stack()), maxStackFrames)
}
