// Package mocks fetcher 패키지의 테스트용 Mock 구현체를 제공합니다.
package mocks

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/darkkaiser/proactive-event-sender/internal/service/fetcher"
	"github.com/stretchr/testify/mock"
)

var _ fetcher.Fetcher = (*MockFetcher)(nil)
var _ io.ReadCloser = (*MockReadCloser)(nil)

// MockFetcher Fetcher 인터페이스의 Mock 구현체 (Testify 사용)
type MockFetcher struct {
	mock.Mock
}

// NewMockFetcher 새로운 MockFetcher 인스턴스를 생성합니다.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)

	var resp *http.Response
	if r := args.Get(0); r != nil {
		resp = r.(*http.Response)
	}
	return resp, args.Error(1)
}

// MockReadCloser Close 호출 여부를 추적하는 io.ReadCloser 구현체입니다.
type MockReadCloser struct {
	reader     io.Reader
	closeCount atomic.Int64
}

// NewMockReadCloser 주어진 데이터를 읽어주는 MockReadCloser를 생성합니다.
func NewMockReadCloser(data string) *MockReadCloser {
	return &MockReadCloser{reader: bytes.NewBufferString(data)}
}

func (m *MockReadCloser) Read(p []byte) (int, error) {
	return m.reader.Read(p)
}

func (m *MockReadCloser) Close() error {
	m.closeCount.Add(1)
	return nil
}

// CloseCount Close가 호출된 횟수를 반환합니다.
func (m *MockReadCloser) CloseCount() int64 {
	return m.closeCount.Load()
}

// NewMockResponse 지정된 상태 코드와 본문을 가진 *http.Response를 생성합니다.
func NewMockResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode:    statusCode,
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Header:        make(http.Header),
		Body:          NewMockReadCloser(body),
		ContentLength: int64(len(body)),
	}
}
