package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/darkkaiser/proactive-event-sender/internal/service/fetcher"
	"github.com/darkkaiser/proactive-event-sender/internal/service/fetcher/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	s := NewSender(fetcher.New(fetcher.Config{DisableLogging: true}))
	event := contract.Event{"timestamp": "2024-01-01T00:00:00.000Z", "event": map[string]any{"name": "AMAZON.MessageAlert.Activated"}}

	resp, err := s.Send(context.Background(), "abc", event, server.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", gotBody["timestamp"])
}

func TestSender_Send_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Request is forbidden."}`))
	}))
	defer server.Close()

	s := NewSender(fetcher.New(fetcher.Config{DisableLogging: true}))

	resp, err := s.Send(context.Background(), "abc", contract.Event{}, server.URL)
	require.NoError(t, err, "2xx가 아닌 응답은 에러가 아니어야 합니다")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "403 Forbidden", resp.Status)
	assert.Equal(t, `{"message":"Request is forbidden."}`, resp.Body)
	assert.False(t, resp.IsSuccess())
}

func TestSender_Send_ClosesResponseBody(t *testing.T) {
	resp := mocks.NewMockResponse(http.StatusAccepted, "")
	f := mocks.NewMockFetcher()
	f.On("Do", mock.Anything).Return(resp, nil)

	got, err := NewSender(f).Send(context.Background(), "abc", contract.Event{}, "http://notification.invalid")

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, got.StatusCode)
	assert.Equal(t, "202 Accepted", got.Status)
	assert.Empty(t, got.Body)
	assert.True(t, got.IsSuccess())
	assert.Equal(t, int64(1), resp.Body.(*mocks.MockReadCloser).CloseCount())
}

func TestSender_Send_NetworkError(t *testing.T) {
	f := mocks.NewMockFetcher()
	f.On("Do", mock.Anything).Return(nil, errors.New("connection reset by peer"))

	resp, err := NewSender(f).Send(context.Background(), "abc", contract.Event{}, "http://notification.invalid")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestSender_Send_UnmarshalableEvent(t *testing.T) {
	f := mocks.NewMockFetcher()

	resp, err := NewSender(f).Send(context.Background(), "abc", contract.Event{"bad": make(chan int)}, "http://unused")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.Internal))
	f.AssertNotCalled(t, "Do", mock.Anything)
}
