package fetcher

import (
	"bytes"
	"io"
	"net/http"
	"slices"
)

// maxBodySnippetBytes HTTPStatusError에 담을 응답 본문의 최대 크기 (4KB)
const maxBodySnippetBytes = 4096

// CheckResponseStatus HTTP 응답의 상태 코드를 검증하고, 허용되지 않으면 HTTPStatusError를 반환합니다.
//
// allowedStatusCodes가 비어있으면 200 OK만 허용합니다.
// 응답 본문을 일부 읽더라도 다시 채워 넣으므로, 호출 후에도 Body 전체를 읽을 수 있습니다.
func CheckResponseStatus(resp *http.Response, allowedStatusCodes ...int) error {
	return checkResponseStatus(resp, true, allowedStatusCodes...)
}

// CheckResponseStatusWithoutReconstruct CheckResponseStatus와 같지만 읽은 Body를 되돌려 놓지 않습니다.
// 에러 발생 시 곧바로 Body를 닫을 경우에 사용합니다.
func CheckResponseStatusWithoutReconstruct(resp *http.Response, allowedStatusCodes ...int) error {
	return checkResponseStatus(resp, false, allowedStatusCodes...)
}

func checkResponseStatus(resp *http.Response, reconstruct bool, allowedStatusCodes ...int) error {
	var isAllowed bool
	if len(allowedStatusCodes) == 0 {
		isAllowed = resp.StatusCode == http.StatusOK
	} else {
		isAllowed = slices.Contains(allowedStatusCodes, resp.StatusCode)
	}
	if isAllowed {
		return nil
	}

	urlStr := ""
	if resp.Request != nil && resp.Request.URL != nil {
		urlStr = redactURL(resp.Request.URL)
	}

	var bodySnippet string
	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		if err == nil && len(bodyBytes) > 0 {
			bodySnippet = string(bodyBytes)

			if reconstruct {
				// 원본 Body의 Close()를 보존합니다.
				resp.Body = struct {
					io.Reader
					io.Closer
				}{
					Reader: io.MultiReader(bytes.NewReader(bodyBytes), resp.Body),
					Closer: resp.Body,
				}
			}
		}
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         urlStr,
		Header:      redactHeaders(resp.Header),
		BodySnippet: bodySnippet,
		Cause:       newErrHTTPStatus(StatusErrorType(resp.StatusCode), resp.Status, urlStr),
	}
}
