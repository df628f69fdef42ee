package fetcher

import (
	"net/http"
	"time"
)

// Config Fetcher 체인 구성을 위한 설정입니다.
type Config struct {
	// Timeout HTTP 요청 제한 시간입니다. 0 이하이면 기본값(30초)을 사용합니다.
	Timeout time.Duration

	// MaxBytes 응답 본문의 최대 크기입니다. 0이면 기본값(1MB), NoLimit이면 제한하지 않습니다.
	MaxBytes int64

	// UserAgent 요청에 User-Agent 헤더가 없을 때 주입할 값입니다. 비어있으면 주입하지 않습니다.
	UserAgent string

	// CheckStatus true이면 200 OK가 아닌 응답을 HTTPStatusError로 처리합니다.
	CheckStatus bool

	// DisableLogging true이면 LoggingFetcher를 체인에 추가하지 않습니다.
	DisableLogging bool

	// Client 지정되면 Timeout 대신 이 http.Client를 사용합니다. (테스트용 Transport 주입 등)
	Client *http.Client
}

// New 설정에 따라 데코레이터 체인을 조립한 Fetcher를 반환합니다.
func New(cfg Config) Fetcher {
	// 1단계: 기본 HTTPFetcher (체인의 가장 안쪽)
	var f Fetcher
	if cfg.Client != nil {
		f = NewHTTPFetcherWithClient(cfg.Client)
	} else {
		f = NewHTTPFetcher(cfg.Timeout)
	}

	// 2단계: 응답 본문 크기 제한
	f = NewMaxBytesFetcher(f, cfg.MaxBytes)

	// 3단계: 상태 코드 검증
	if cfg.CheckStatus {
		f = NewStatusCodeFetcher(f)
	}

	// 4단계: User-Agent 주입
	if cfg.UserAgent != "" {
		f = NewUserAgentFetcher(f, cfg.UserAgent)
	}

	// 5단계: 로깅 (체인의 가장 바깥쪽)
	if !cfg.DisableLogging {
		f = NewLoggingFetcher(f)
	}

	return f
}
