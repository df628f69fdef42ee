// Package dispatch 스킬마다 토큰 발급, 이벤트 생성, 이벤트 전송을 독립적으로 수행하고 결과를 모읍니다.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/proactive-event-sender/internal/config"
	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/darkkaiser/proactive-event-sender/internal/service/fetcher"
	applog "github.com/darkkaiser/proactive-event-sender/pkg/log"
	"golang.org/x/time/rate"
)

const component = "service.dispatch"

// Result 스킬 하나의 전송 결과입니다.
type Result = contract.DispatchResult

// Dispatcher 스킬별 전송 흐름을 고루틴으로 동시에 실행하고, 모두 끝날 때까지 기다린 뒤 결과를 반환합니다.
//
// 각 흐름은 자신만의 스킬 복사본, 토큰, 이벤트를 사용하며 서로 상태를 공유하지 않습니다.
// 한 스킬의 실패는 다른 스킬의 전송에 영향을 주지 않습니다.
type Dispatcher struct {
	tokens  contract.TokenFetcher
	builder contract.EventBuilder
	sender  contract.EventSender

	maxConcurrency int
	limiter        *rate.Limiter

	now func() time.Time
}

// Option Dispatcher 설정을 변경하는 함수입니다.
type Option func(*Dispatcher)

// WithMaxConcurrency 동시에 처리할 최대 스킬 수를 제한합니다. 0 이하이면 제한하지 않습니다.
func WithMaxConcurrency(n int) Option {
	return func(d *Dispatcher) {
		d.maxConcurrency = n
	}
}

// WithRateLimit 초당 토큰 발급 요청 수를 제한합니다. perSecond가 0 이하이면 제한하지 않습니다.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(d *Dispatcher) {
		if perSecond <= 0 {
			d.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithClock 이벤트 timestamp에 사용할 현재 시각 함수를 지정합니다.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// New 새로운 Dispatcher를 생성합니다.
func New(tokens contract.TokenFetcher, builder contract.EventBuilder, sender contract.EventSender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tokens:  tokens,
		builder: builder,
		sender:  sender,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run 모든 스킬에 대해 이벤트를 전송하고, 선언 순서와 같은 순서의 결과를 반환합니다.
//
// override가 비어있지 않으면 각 스킬의 메시지 대신 사용합니다. 입력 슬라이스는 변경하지 않습니다.
// endpoint가 nil이면 네트워크 요청 없이 모든 스킬을 NotFound로 실패 처리합니다.
func (d *Dispatcher) Run(ctx context.Context, skills []config.SkillConfig, endpoint *config.EndpointConfig, override string) []Result {
	results := make([]Result, len(skills))

	var sem chan struct{}
	if d.maxConcurrency > 0 {
		sem = make(chan struct{}, d.maxConcurrency)
	}

	var wg sync.WaitGroup
	for i, skill := range skills {
		if override != "" {
			skill.Message = override
		}

		wg.Add(1)
		go func(i int, skill config.SkillConfig) {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					results[i] = Result{
						SkillName: skill.DisplayName(i),
						Err:       apperrors.Wrap(ctx.Err(), apperrors.Timeout, "전송 대기 중 실행이 취소되었습니다"),
					}
					return
				}
			}

			results[i] = d.dispatch(ctx, i, skill, endpoint)
		}(i, skill)
	}

	wg.Wait()

	return results
}

// dispatch 스킬 하나에 대해 토큰 발급 -> 이벤트 생성 -> 이벤트 전송을 수행합니다.
func (d *Dispatcher) dispatch(ctx context.Context, index int, skill config.SkillConfig, endpoint *config.EndpointConfig) (result Result) {
	start := time.Now()

	result.SkillName = skill.DisplayName(index)
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"skill_name": result.SkillName,
	})

	defer func() {
		if r := recover(); r != nil {
			result.Err = apperrors.New(apperrors.Internal, fmt.Sprintf("이벤트 전송 중 패닉이 발생했습니다: %v", r))
			logger.WithField("panic", r).Error("이벤트 전송 중 패닉 발생")
		}

		result.Duration = time.Since(start)
	}()

	if endpoint == nil {
		result.Err = apperrors.New(apperrors.NotFound, "선택된 리전과 환경에 해당하는 엔드포인트가 없습니다")
		return result
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			result.Err = apperrors.Wrap(err, apperrors.Timeout, "전송 대기 중 실행이 취소되었습니다")
			logger.WithError(result.Err).Error("이벤트 전송 실패")
			return result
		}
	}

	token, err := d.tokens.Fetch(ctx, skill.ClientID, skill.ClientSecret)
	if err != nil {
		result.Err = err
		logger.WithError(err).WithField("error_type", apperrors.UnderlyingType(err).String()).
			Error("액세스 토큰 발급 실패")
		return result
	}

	event, err := d.builder.Build(skill.Message, d.now(), skill.ValidityHours)
	if err != nil {
		result.Err = err
		logger.WithError(err).Error("이벤트 생성 실패")
		return result
	}

	resp, err := d.sender.Send(ctx, token.AccessToken, event, endpoint.NotificationServiceURL)
	if err != nil {
		result.Err = err
		logger.WithError(err).WithField("error_type", apperrors.UnderlyingType(err).String()).
			Error("이벤트 전송 실패")
		return result
	}

	result.StatusCode = resp.StatusCode
	logger = logger.WithField("status_code", resp.StatusCode)

	if !resp.IsSuccess() {
		result.Err = apperrors.New(fetcher.StatusErrorType(resp.StatusCode), fmt.Sprintf("이벤트 전송이 거부되었습니다. 상태 코드: %s", resp.Status))
		logger.WithField("response", resp.Body).Warn("이벤트 전송 거부")
		return result
	}

	logger.Infof("이벤트 전송 성공. statusCode: %d", resp.StatusCode)

	return result
}
