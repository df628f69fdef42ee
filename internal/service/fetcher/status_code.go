package fetcher

import (
	"net/http"
)

// StatusCodeFetcher 허용되지 않은 상태 코드의 응답을 HTTPStatusError로 바꾸는 미들웨어입니다.
// 에러를 반환할 때는 응답 본문을 직접 정리하고 nil 응답을 반환합니다.
type StatusCodeFetcher struct {
	delegate Fetcher
	allowed  []int // 비어있으면 200 OK만 허용
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 새로운 StatusCodeFetcher를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowed ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate, allowed: allowed}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		discardBody(resp)
		return nil, err
	}

	if err := CheckResponseStatusWithoutReconstruct(resp, f.allowed...); err != nil {
		discardBody(resp)
		return nil, err
	}

	return resp, nil
}
