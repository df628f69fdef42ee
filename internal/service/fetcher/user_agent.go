package fetcher

import (
	"net/http"
)

// UserAgentFetcher User-Agent 헤더가 없는 요청에 지정된 User-Agent를 주입하는 미들웨어입니다.
//
// 원본 요청을 보호하기 위해 주입이 필요한 경우 req.Clone()으로 복제본을 만들어 전달합니다.
type UserAgentFetcher struct {
	delegate  Fetcher
	userAgent string
}

var _ Fetcher = (*UserAgentFetcher)(nil)

// NewUserAgentFetcher 새로운 UserAgentFetcher 인스턴스를 생성합니다.
func NewUserAgentFetcher(delegate Fetcher, userAgent string) *UserAgentFetcher {
	return &UserAgentFetcher{
		delegate:  delegate,
		userAgent: userAgent,
	}
}

func (f *UserAgentFetcher) Do(req *http.Request) (*http.Response, error) {
	if f.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return f.delegate.Do(req)
	}

	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", f.userAgent)

	return f.delegate.Do(clonedReq)
}
