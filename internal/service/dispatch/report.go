package dispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
)

// Report 실행 결과를 파일로 저장할 때 사용하는 JSON 구조입니다.
type Report struct {
	Region      string         `json:"region"`
	Environment string         `json:"environment"`
	Endpoint    string         `json:"endpoint"`
	StartedAt   time.Time      `json:"started_at"`
	DurationMS  int64          `json:"duration_ms"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Results     []ReportResult `json:"results"`
}

// ReportResult 스킬 하나의 결과입니다.
type ReportResult struct {
	SkillName  string `json:"skill_name"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// NewReport 실행 요약을 Report로 변환합니다.
func NewReport(summary *contract.DispatchSummary) *Report {
	succeeded, failed := summary.Counts()

	r := &Report{
		Region:      summary.Region,
		Environment: summary.Environment,
		Endpoint:    summary.EndpointURL,
		StartedAt:   summary.StartedAt,
		DurationMS:  summary.Duration.Milliseconds(),
		Succeeded:   succeeded,
		Failed:      failed,
		Results:     make([]ReportResult, 0, len(summary.Results)),
	}

	for _, res := range summary.Results {
		rr := ReportResult{
			SkillName:  res.SkillName,
			Success:    res.Succeeded(),
			StatusCode: res.StatusCode,
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Err != nil {
			rr.ErrorType = apperrors.UnderlyingType(res.Err).String()
			rr.Error = res.Err.Error()
		}
		r.Results = append(r.Results, rr)
	}

	return r
}

// WriteReport 실행 요약을 JSON 파일로 저장합니다.
func WriteReport(filename string, summary *contract.DispatchSummary) error {
	data, err := json.MarshalIndent(NewReport(summary), "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "실행 결과를 JSON으로 변환할 수 없습니다")
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("실행 결과 파일을 저장할 수 없습니다: '%s'", filename))
	}

	return nil
}
