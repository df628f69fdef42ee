package main

import (
	"context"
	"fmt"
	"time"

	"github.com/darkkaiser/proactive-event-sender/internal/config"
	"github.com/darkkaiser/proactive-event-sender/internal/pkg/version"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/darkkaiser/proactive-event-sender/internal/service/dispatch"
	"github.com/darkkaiser/proactive-event-sender/internal/service/event"
	"github.com/darkkaiser/proactive-event-sender/internal/service/fetcher"
	"github.com/darkkaiser/proactive-event-sender/internal/service/notification/telegram"
	"github.com/darkkaiser/proactive-event-sender/internal/service/token"
	applog "github.com/darkkaiser/proactive-event-sender/pkg/log"
)

// app 한 번의 실행에 필요한 설정과 인자를 묶습니다.
type app struct {
	config *config.AppConfig
	flags  *cliFlags

	// newReporter 실행 결과 보고 채널을 생성합니다. 텔레그램이 비활성화되어 있으면 nil을 반환합니다.
	newReporter func(cfg *config.AppConfig) (contract.RunReporter, error)
}

func newApp(appConfig *config.AppConfig, flags *cliFlags) *app {
	return &app{
		config:      appConfig,
		flags:       flags,
		newReporter: newTelegramReporter,
	}
}

// execute 스킬 로드 -> 자격 증명 검증 -> 엔드포인트 선택 -> 템플릿 로드 -> 전송 -> 결과 보고 순서로 실행합니다.
//
// 설정 파일을 사용할 수 없거나 자격 증명이 누락된 스킬이 있으면 네트워크 요청 없이 에러를 반환합니다.
// 개별 스킬의 전송 실패는 에러로 반환하지 않습니다.
func (a *app) execute(ctx context.Context) error {
	logger := applog.WithComponent(component)

	skills, err := config.LoadSkills(a.config.Files.Skills)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		logger.WithField("file", a.config.Files.Skills).Warn("등록된 스킬이 없습니다")
	}

	for _, name := range config.IncompleteSkills(skills) {
		logger.WithField("skill_name", name).Error("client_id 또는 client_secret이 설정되지 않은 스킬")
	}
	if err := config.ValidateSkills(skills); err != nil {
		return err
	}

	endpoints, err := config.LoadEndpoints(a.config.Files.Endpoints)
	if err != nil {
		return err
	}
	endpoint := a.selectEndpoint(endpoints)

	tmpl, err := event.LoadTemplate(a.config.Files.Template)
	if err != nil {
		return err
	}

	d := a.newDispatcher(tmpl)

	startedAt := time.Now()
	results := d.Run(ctx, skills, endpoint, a.flags.message)

	summary := &contract.DispatchSummary{
		Region:      a.flags.region,
		Environment: a.flags.environment,
		StartedAt:   startedAt,
		Duration:    time.Since(startedAt),
		Results:     results,
	}
	if endpoint != nil {
		summary.EndpointURL = endpoint.NotificationServiceURL
	}

	succeeded, failed := summary.Counts()
	logger.WithFields(applog.Fields{
		"succeeded": succeeded,
		"failed":    failed,
		"duration":  summary.Duration.String(),
	}).Info("Proactive Event 전송 완료")

	a.report(ctx, summary)

	return nil
}

// selectEndpoint 리전과 환경이 일치하는 첫 번째 엔드포인트를 반환합니다. 일치하는 항목이 없으면 nil을 반환합니다.
func (a *app) selectEndpoint(endpoints []config.EndpointConfig) *config.EndpointConfig {
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"region":      a.flags.region,
		"environment": a.flags.environment,
	})

	matches := config.SelectEndpoints(endpoints, a.flags.region, a.flags.environment)
	switch len(matches) {
	case 0:
		logger.Error("리전과 환경에 해당하는 엔드포인트가 없습니다")
		return nil
	case 1:
	default:
		logger.WithField("count", len(matches)).Warn("일치하는 엔드포인트가 여러 개입니다. 첫 번째 항목을 사용합니다")
	}

	logger.WithField("notification_service_url", matches[0].NotificationServiceURL).Debug("엔드포인트 선택")

	return &matches[0]
}

// newDispatcher 토큰 발급과 이벤트 전송에 사용할 HTTP 클라이언트 체인을 구성하여 Dispatcher를 생성합니다.
func (a *app) newDispatcher(builder contract.EventBuilder) *dispatch.Dispatcher {
	userAgent := fmt.Sprintf("%s/%s", config.AppName, version.Get().Version)

	tokenFetcher := token.New(fetcher.New(fetcher.Config{
		Timeout:     a.config.HTTP.Timeout,
		MaxBytes:    a.config.HTTP.MaxResponseBytes,
		UserAgent:   userAgent,
		CheckStatus: true,
	}), a.config.Auth.TokenURL, a.config.Auth.Scope)

	sender := event.NewSender(fetcher.New(fetcher.Config{
		Timeout:   a.config.HTTP.Timeout,
		MaxBytes:  a.config.HTTP.MaxResponseBytes,
		UserAgent: userAgent,
	}))

	return dispatch.New(tokenFetcher, builder, sender,
		dispatch.WithMaxConcurrency(a.config.Dispatch.MaxConcurrency),
		dispatch.WithRateLimit(a.config.Dispatch.RateLimit, a.config.Dispatch.RateBurst),
	)
}

// report 실행 결과를 파일과 텔레그램으로 보고합니다. 보고 실패는 종료 코드에 영향을 주지 않습니다.
func (a *app) report(ctx context.Context, summary *contract.DispatchSummary) {
	logger := applog.WithComponent(component)

	if a.flags.report != "" {
		if err := dispatch.WriteReport(a.flags.report, summary); err != nil {
			logger.WithError(err).Error("실행 결과 파일 저장 실패")
		} else {
			logger.WithField("file", a.flags.report).Info("실행 결과 파일 저장 완료")
		}
	}

	reporter, err := a.newReporter(a.config)
	if err != nil {
		logger.WithError(err).Error("실행 결과 보고 채널 초기화 실패")
		return
	}
	if reporter == nil {
		return
	}

	if err := reporter.Report(ctx, summary); err != nil {
		logger.WithError(err).Error("실행 결과 보고 실패")
	}
}

func newTelegramReporter(cfg *config.AppConfig) (contract.RunReporter, error) {
	if !cfg.Notifiers.Telegram.Enabled {
		return nil, nil
	}

	httpClient := fetcher.NewHTTPFetcher(cfg.HTTP.Timeout).Client()

	r, err := telegram.New(cfg.Notifiers.Telegram, httpClient, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return r, nil
}
