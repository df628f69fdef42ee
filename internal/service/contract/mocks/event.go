package mocks

import (
	"context"
	"time"

	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

// MockEventBuilder contract.EventBuilder 인터페이스의 Mock 구현체입니다.
type MockEventBuilder struct {
	mock.Mock
}

func (m *MockEventBuilder) Build(message string, ts time.Time, validityHours float64) (contract.Event, error) {
	args := m.Called(message, ts, validityHours)

	var event contract.Event
	if e := args.Get(0); e != nil {
		event = e.(contract.Event)
	}
	return event, args.Error(1)
}

// MockEventSender contract.EventSender 인터페이스의 Mock 구현체입니다.
type MockEventSender struct {
	mock.Mock
}

func (m *MockEventSender) Send(ctx context.Context, accessToken string, event contract.Event, endpointURL string) (*contract.SendResponse, error) {
	args := m.Called(ctx, accessToken, event, endpointURL)

	var resp *contract.SendResponse
	if r := args.Get(0); r != nil {
		resp = r.(*contract.SendResponse)
	}
	return resp, args.Error(1)
}

// MockRunReporter contract.RunReporter 인터페이스의 Mock 구현체입니다.
type MockRunReporter struct {
	mock.Mock
}

func (m *MockRunReporter) Report(ctx context.Context, summary *contract.DispatchSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}
