package event

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/darkkaiser/proactive-event-sender/internal/service/fetcher"
)

// Sender contract.EventSender의 기본 구현체입니다.
type Sender struct {
	fetcher fetcher.Fetcher
}

var _ contract.EventSender = (*Sender)(nil)

// NewSender 새로운 Sender를 생성합니다.
//
// 2xx가 아닌 응답도 호출자에게 전달해야 하므로 f에는 상태 코드 검증을 포함하지 않아야 합니다.
func NewSender(f fetcher.Fetcher) *Sender {
	return &Sender{fetcher: f}
}

// Send 이벤트를 JSON으로 직렬화하여 endpointURL로 한 번 POST합니다.
func (s *Sender) Send(ctx context.Context, accessToken string, event contract.Event, endpointURL string) (*contract.SendResponse, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "이벤트를 JSON으로 변환할 수 없습니다")
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+accessToken)

	resp, err := fetcher.Post(ctx, s.fetcher, endpointURL, header, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, fetcher.TransportErrorType(err), "이벤트 전송 요청이 실패했습니다")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, fetcher.TransportErrorType(err), "이벤트 전송 응답을 읽는 중 오류가 발생했습니다")
	}

	return &contract.SendResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(respBody),
	}, nil
}
