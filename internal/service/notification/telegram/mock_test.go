package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

// 컴파일 타임에 client 인터페이스 구현 여부를 검증합니다.
var _ client = (*mockClient)(nil)

// mockClient 텔레그램 봇 API(client)의 Mock 구현체입니다.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)

	var msg tgbotapi.Message
	if args.Get(0) != nil {
		msg = args.Get(0).(tgbotapi.Message)
	}
	return msg, args.Error(1)
}
