package mocks

import (
	"context"

	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

// MockTokenFetcher contract.TokenFetcher 인터페이스의 Mock 구현체입니다.
type MockTokenFetcher struct {
	mock.Mock
}

func (m *MockTokenFetcher) Fetch(ctx context.Context, clientID, clientSecret string) (*contract.AccessToken, error) {
	args := m.Called(ctx, clientID, clientSecret)

	var token *contract.AccessToken
	if t := args.Get(0); t != nil {
		token = t.(*contract.AccessToken)
	}
	return token, args.Error(1)
}
