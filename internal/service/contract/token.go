package contract

import (
	"context"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
)

var (
	// ErrCredentialsMissing client_id 또는 client_secret이 비어있어 토큰 발급을 시도하지 않았을 때 반환하는 에러입니다.
	ErrCredentialsMissing = apperrors.New(apperrors.InvalidInput, "client_id와 client_secret은 비워둘 수 없습니다")
)

// AccessToken OAuth2 토큰 엔드포인트가 발급한 액세스 토큰입니다.
// 스킬마다 새로 발급받으며 캐싱하거나 다른 스킬과 공유하지 않습니다.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// TokenFetcher Client Credentials 방식으로 액세스 토큰을 발급받는 인터페이스입니다.
type TokenFetcher interface {
	// Fetch 토큰 엔드포인트에 한 번 요청하여 액세스 토큰을 발급받습니다.
	// clientID 또는 clientSecret이 비어있으면 네트워크 요청 없이 ErrCredentialsMissing을 반환합니다.
	Fetch(ctx context.Context, clientID, clientSecret string) (*AccessToken, error)
}
