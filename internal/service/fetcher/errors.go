package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
)

// newErrHTTPStatus HTTPStatusError의 Cause로 사용되는 도메인 에러를 생성합니다.
func newErrHTTPStatus(errType apperrors.ErrorType, status, url string) error {
	if url == "" {
		return apperrors.New(errType, fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %s", status))
	}
	return apperrors.New(errType, fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %s (URL: %s)", status, url))
}

// NewErrResponseBodyTooLarge 응답 본문을 읽는 도중 크기 제한을 초과했을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLarge(limit int64) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("응답 본문의 크기가 제한(%d 바이트)을 초과했습니다", limit))
}

// NewErrResponseBodyTooLargeByContentLength Content-Length 헤더 값이 크기 제한을 초과했을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLargeByContentLength(contentLength, limit int64) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("응답 본문의 크기(Content-Length: %d 바이트)가 제한(%d 바이트)을 초과했습니다", contentLength, limit))
}

// StatusErrorType HTTP 상태 코드를 도메인 에러 타입으로 매핑합니다.
func StatusErrorType(statusCode int) apperrors.ErrorType {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Unauthorized

	case http.StatusNotFound:
		return apperrors.NotFound

	case http.StatusBadRequest:
		return apperrors.InvalidInput

	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return apperrors.Unavailable
	}

	if statusCode >= 500 {
		return apperrors.Unavailable
	}
	return apperrors.ExecutionFailed
}

// TransportErrorType 네트워크 계층에서 발생한 에러를 도메인 에러 타입으로 분류합니다.
//
//   - 이미 AppError인 경우: 해당 타입 (예: 상태 코드 에러, 크기 제한 초과)
//   - 제한 시간 초과: Timeout
//   - 그 외 연결 실패: Unavailable
func TransportErrorType(err error) apperrors.ErrorType {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return apperrors.UnderlyingType(err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Timeout
	}

	return apperrors.Unavailable
}
