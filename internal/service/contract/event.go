package contract

import (
	"context"
	"time"
)

// Event 엔드포인트로 전송되는 Proactive Event 페이로드입니다.
// 템플릿을 깊은 복사하여 전송할 때마다 새로 만들어집니다.
type Event map[string]any

// SendResponse 이벤트 전송 요청에 대한 HTTP 응답 정보입니다.
type SendResponse struct {
	StatusCode int
	Status     string
	Body       string
}

// IsSuccess 2xx 응답인지 여부를 반환합니다.
func (r *SendResponse) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// EventBuilder 메시지와 시각 정보로 전송할 이벤트를 만드는 인터페이스입니다.
type EventBuilder interface {
	// Build 메시지를 creator 이름에 넣고, ts를 timestamp로, ts + validityHours를 expiryTime으로 설정한 이벤트를 반환합니다.
	Build(message string, ts time.Time, validityHours float64) (Event, error)
}

// EventSender 이벤트를 엔드포인트로 전송하는 인터페이스입니다.
type EventSender interface {
	// Send 액세스 토큰을 Bearer 인증 헤더에 담아 이벤트를 한 번 POST합니다.
	// 2xx가 아닌 응답도 에러가 아닌 SendResponse로 반환하며, 요청 생성이나 네트워크 실패만 에러로 반환합니다.
	Send(ctx context.Context, accessToken string, event Event, endpointURL string) (*SendResponse, error)
}
