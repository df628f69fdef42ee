package fetcher

import (
	"fmt"
	"net/http"
)

// HTTPStatusError 허용되지 않은 HTTP 상태 코드를 받았을 때 응답 정보를 포함하는 구조화된 에러입니다.
//
// Cause에는 상태 코드에 대응하는 apperrors.AppError가 저장되므로,
// apperrors.Is(err, apperrors.Unauthorized)처럼 에러 타입으로 분기할 수 있습니다.
//
//	var statusErr *fetcher.HTTPStatusError
//	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
//	    // client_id/client_secret 확인 필요
//	}
type HTTPStatusError struct {
	// StatusCode 서버가 반환한 HTTP 상태 코드입니다.
	StatusCode int

	// Status HTTP 상태 텍스트입니다. (예: "401 Unauthorized")
	Status string

	// URL 민감 정보가 마스킹된 요청 URL입니다.
	URL string

	// Header 민감 헤더가 마스킹된 응답 헤더입니다.
	Header http.Header

	// BodySnippet 응답 본문의 앞부분(최대 4KB)입니다.
	BodySnippet string

	// Cause 상태 코드에 대응하는 도메인 에러입니다.
	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if e.BodySnippet != "" {
		msg += fmt.Sprintf(", Body: %s", e.BodySnippet)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}
