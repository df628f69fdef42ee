package fetcher

import (
	"io"
	"net/http"
)

const (
	// defaultMaxBytes 토큰 응답과 이벤트 응답 모두 수 KB 이내이므로 1MB로 충분합니다.
	defaultMaxBytes = 1 << 20

	// NoLimit 응답 본문 크기를 제한하지 않습니다.
	NoLimit = -1
)

// limitedBody 읽은 바이트 수를 세다가 limit를 넘으면 크기 초과 에러를 반환하는 응답 본문입니다.
type limitedBody struct {
	body  io.ReadCloser
	limit int64
	read  int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.read > b.limit {
		return 0, NewErrResponseBodyTooLarge(b.limit)
	}

	// limit보다 1바이트 더 읽을 수 있게 해서 정확히 limit 크기인 본문과 초과한 본문을 구분합니다.
	if remaining := b.limit + 1 - b.read; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := b.body.Read(p)
	b.read += int64(n)
	if b.read > b.limit {
		return n - int(b.read-b.limit), NewErrResponseBodyTooLarge(b.limit)
	}

	return n, err
}

func (b *limitedBody) Close() error {
	return b.body.Close()
}

// MaxBytesFetcher 응답 본문 크기를 제한하는 미들웨어입니다.
//
// Content-Length가 limit를 넘으면 본문을 읽지 않고 에러를 반환하고,
// Content-Length가 없는 응답은 읽는 도중에 limit를 넘는 순간 에러를 반환합니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

// NewMaxBytesFetcher limit이 NoLimit이면 delegate를 그대로, 0 이하이면 기본값(1MB)을 사용합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	switch {
	case limit == NoLimit:
		return delegate
	case limit <= 0:
		limit = defaultMaxBytes
	}

	return &MaxBytesFetcher{delegate: delegate, limit: limit}
}

func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		discardBody(resp)
		return nil, err
	}

	if resp.ContentLength > f.limit {
		discardBody(resp)
		return nil, NewErrResponseBodyTooLargeByContentLength(resp.ContentLength, f.limit)
	}

	resp.Body = &limitedBody{body: resp.Body, limit: f.limit}

	return resp, nil
}
