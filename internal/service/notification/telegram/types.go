// Package telegram 전송 결과 요약을 텔레그램 채팅방으로 보고합니다.
package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// component 텔레그램 보고 로깅용 컴포넌트 이름
const component = "notification.telegram"

const (
	// messageMaxLength 텔레그램 메시지 한 건에 담을 최대 바이트 수입니다.
	//
	// 텔레그램 Bot API 공식 제한은 4096자이지만, HTML 태그 오버헤드를 고려하여 3900으로 설정했습니다.
	messageMaxLength = 3900

	// defaultHTTPTimeout 텔레그램 봇 API 호출에 사용하는 HTTP 클라이언트의 기본 타임아웃입니다.
	defaultHTTPTimeout = 30 * time.Second

	// defaultRateLimit 채팅방당 초당 전송 가능한 메시지 수입니다.
	defaultRateLimit = 1

	// defaultRateBurst 순간적으로 허용되는 최대 연속 전송 수입니다.
	defaultRateBurst = 3
)

// client 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// 컴파일 타임에 *tgbotapi.BotAPI가 client 인터페이스를 구현하는지 검증합니다.
var _ client = (*tgbotapi.BotAPI)(nil)
