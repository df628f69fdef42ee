package contract

import (
	"context"
	"time"
)

// DispatchResult 스킬 하나에 대한 이벤트 전송 결과입니다.
type DispatchResult struct {
	SkillName string

	// StatusCode 이벤트 전송 응답의 HTTP 상태 코드입니다. 전송 단계에 도달하지 못했으면 0입니다.
	StatusCode int

	// Err 실패 원인입니다. 성공한 경우 nil입니다.
	Err error

	Duration time.Duration
}

// Succeeded 이벤트가 정상적으로 전송되었는지 여부를 반환합니다.
func (r DispatchResult) Succeeded() bool {
	return r.Err == nil
}

// DispatchSummary 한 번의 실행 결과를 집계한 요약 정보입니다.
type DispatchSummary struct {
	Region      string
	Environment string
	EndpointURL string

	StartedAt time.Time
	Duration  time.Duration

	// Results 스킬 목록 파일에 선언된 순서와 같은 순서의 결과입니다.
	Results []DispatchResult
}

// Counts 성공과 실패 건수를 반환합니다.
func (s *DispatchSummary) Counts() (succeeded, failed int) {
	for _, r := range s.Results {
		if r.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// RunReporter 실행 요약을 외부 채널(텔레그램 등)로 알리는 인터페이스입니다.
type RunReporter interface {
	Report(ctx context.Context, summary *DispatchSummary) error
}
