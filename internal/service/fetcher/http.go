package fetcher

import (
	"net/http"
	"time"
)

// defaultTimeout 타임아웃이 지정되지 않았을 때 사용하는 HTTP 요청 제한 시간
const defaultTimeout = 30 * time.Second

// HTTPFetcher 요청 제한 시간이 설정된 http.Client를 사용하는 기본 Fetcher 구현체입니다. (체인의 가장 안쪽)
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 새로운 HTTPFetcher 인스턴스를 생성합니다.
// timeout이 0 이하이면 기본값(30초)을 사용합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewHTTPFetcherWithClient 외부에서 구성한 http.Client를 사용하는 HTTPFetcher를 생성합니다.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	if client == nil {
		return NewHTTPFetcher(defaultTimeout)
	}
	return &HTTPFetcher{client: client}
}

// Client 내부에서 사용하는 http.Client를 반환합니다.
// 텔레그램 봇 API처럼 http.Client를 직접 요구하는 라이브러리에 같은 제한 시간 설정을 넘길 때 사용합니다.
func (h *HTTPFetcher) Client() *http.Client {
	return h.client
}

// Do HTTP 요청을 실행합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}
