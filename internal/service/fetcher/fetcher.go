// Package fetcher 외부 HTTP API 호출에 사용되는 Fetcher 인터페이스와 데코레이터 체인을 제공합니다.
//
// 체인 구성 (안쪽 -> 바깥쪽):
//
//	HTTPFetcher -> MaxBytesFetcher -> StatusCodeFetcher(선택) -> UserAgentFetcher -> LoggingFetcher
package fetcher

import (
	"context"
	"io"
	"net/http"
)

// component Fetcher 로깅용 컴포넌트 이름
const component = "service.fetcher"

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 반드시 호출자가 닫아야 합니다.
//   - Context 취소 시 즉시 요청을 중단하고 에러를 반환해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Post 지정된 URL로 HTTP POST 요청을 전송하는 헬퍼 함수입니다.
//
// 요청 실패 시 커넥션 재사용을 위해 응답 객체의 Body를 비우고 닫은 뒤 nil 응답을 반환합니다.
func Post(ctx context.Context, f Fetcher, url string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := f.Do(req)
	if err != nil {
		discardBody(resp)
		return nil, err
	}

	return resp, nil
}

// maxDiscardBytes 커넥션을 재사용하기 위해 버리는 응답 본문의 최대 크기입니다. 이보다 큰 본문을 가진 커넥션은 재사용하지 않습니다.
const maxDiscardBytes = 64 << 10

// discardBody 응답 본문을 최대 maxDiscardBytes까지 읽어서 버린 후 닫습니다. resp가 nil이어도 안전합니다.
func discardBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDiscardBytes))
	_ = resp.Body.Close()
}
