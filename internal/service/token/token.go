// Package token OAuth2 Client Credentials 방식으로 Proactive Events 전송용 액세스 토큰을 발급받습니다.
package token

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/darkkaiser/proactive-event-sender/internal/service/fetcher"
	applog "github.com/darkkaiser/proactive-event-sender/pkg/log"
	"github.com/tidwall/gjson"
)

const component = "service.token"

const grantType = "client_credentials"

// Fetcher contract.TokenFetcher의 기본 구현체입니다.
type Fetcher struct {
	fetcher fetcher.Fetcher

	tokenURL string
	scope    string
}

var _ contract.TokenFetcher = (*Fetcher)(nil)

// New 새로운 토큰 Fetcher를 생성합니다.
//
// f는 200 OK가 아닌 응답을 HTTPStatusError로 변환하도록 구성되어 있어야 합니다. (fetcher.Config.CheckStatus)
func New(f fetcher.Fetcher, tokenURL, scope string) *Fetcher {
	return &Fetcher{
		fetcher:  f,
		tokenURL: tokenURL,
		scope:    scope,
	}
}

// Fetch 토큰 엔드포인트에 한 번 POST 요청하여 액세스 토큰을 발급받습니다. 재시도하지 않습니다.
func (f *Fetcher) Fetch(ctx context.Context, clientID, clientSecret string) (*contract.AccessToken, error) {
	if clientID == "" || clientSecret == "" {
		return nil, contract.ErrCredentialsMissing
	}

	form := url.Values{}
	form.Set("grant_type", grantType)
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("scope", f.scope)

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("Accept", "application/json")

	applog.WithComponentAndFields(component, applog.Fields{
		"client_id": applog.MaskSensitiveData(clientID),
		"scope":     f.scope,
	}).Debug("액세스 토큰 발급 요청")

	resp, err := fetcher.Post(ctx, f.fetcher, f.tokenURL, header, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.Wrap(err, fetcher.TransportErrorType(err), "액세스 토큰 발급 요청이 실패했습니다")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, fetcher.TransportErrorType(err), "액세스 토큰 응답을 읽는 중 오류가 발생했습니다")
	}

	return parse(body)
}

// parse 토큰 응답(JSON)에서 액세스 토큰 정보를 추출합니다.
func parse(body []byte) (*contract.AccessToken, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.New(apperrors.ParsingFailed, "액세스 토큰 응답이 올바른 JSON 형식이 아닙니다")
	}

	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return nil, apperrors.New(apperrors.ParsingFailed, "액세스 토큰 응답이 JSON 객체가 아닙니다")
	}

	accessToken := result.Get("access_token")
	if accessToken.Type != gjson.String || accessToken.String() == "" {
		return nil, apperrors.New(apperrors.ParsingFailed, "액세스 토큰 응답에 access_token이 없습니다")
	}

	return &contract.AccessToken{
		AccessToken: accessToken.String(),
		TokenType:   result.Get("token_type").String(),
		ExpiresIn:   result.Get("expires_in").Int(),
		Scope:       result.Get("scope").String(),
	}, nil
}
