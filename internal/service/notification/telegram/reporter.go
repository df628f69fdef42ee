package telegram

import (
	"context"
	"net/http"
	"strings"

	"github.com/darkkaiser/proactive-event-sender/internal/config"
	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	applog "github.com/darkkaiser/proactive-event-sender/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// 컴파일 타임에 Reporter가 contract.RunReporter 인터페이스를 구현하는지 검증합니다.
var _ contract.RunReporter = (*Reporter)(nil)

// Reporter 전송 결과 요약을 텔레그램 메시지로 전송하는 contract.RunReporter 구현체입니다.
type Reporter struct {
	client client
	chatID int64

	limiter *rate.Limiter
}

// New 텔레그램 봇 API 클라이언트를 초기화하여 Reporter를 생성합니다.
//
// 봇 API 초기화 과정에서 getMe 호출로 BotToken의 유효성을 확인합니다.
// httpClient가 nil이면 기본 타임아웃이 설정된 클라이언트를 사용합니다.
func New(cfg config.TelegramConfig, httpClient *http.Client, debug bool) (*Reporter, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": applog.MaskSensitiveData(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 API 클라이언트 초기화")

	// http.DefaultClient는 타임아웃이 없으므로 반드시 명시적인 타임아웃을 가진 클라이언트를 사용합니다.
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	apiEndpoint := cfg.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, apiEndpoint, httpClient)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요.")
	}
	botAPI.Debug = debug

	return newReporter(botAPI, cfg.ChatID), nil
}

func newReporter(c client, chatID int64) *Reporter {
	return &Reporter{
		client:  c,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
	}
}

// Report 실행 요약을 메시지로 만들어 전송합니다. 메시지가 길면 줄 단위로 나누어 순서대로 전송합니다.
func (r *Reporter) Report(ctx context.Context, summary *contract.DispatchSummary) error {
	if summary == nil {
		return apperrors.New(apperrors.Internal, "보고할 실행 요약이 없습니다")
	}

	for _, chunk := range splitMessage(buildSummaryMessage(summary), messageMaxLength) {
		if err := r.sendChunk(ctx, chunk); err != nil {
			return err
		}
	}

	succeeded, failed := summary.Counts()
	applog.WithComponentAndFields(component, applog.Fields{
		"chat_id":   r.chatID,
		"succeeded": succeeded,
		"failed":    failed,
	}).Info("텔레그램 실행 결과 보고 완료")

	return nil
}

// sendChunk 메시지 한 건을 HTML 모드로 전송합니다.
func (r *Reporter) sendChunk(ctx context.Context, text string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Timeout, "텔레그램 메시지 전송 대기 중 취소되었습니다")
	}

	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := r.client.Send(msg); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id":        r.chatID,
			"message_length": len(text),
			"error":          err,
		}).Error("텔레그램 메시지 전송 실패")

		return apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 메시지 전송에 실패했습니다")
	}

	return nil
}

// splitMessage 메시지를 limit 바이트 이하의 조각으로 나눕니다. 가능하면 줄바꿈 위치에서 나눕니다.
func splitMessage(message string, limit int) []string {
	if len(message) <= limit {
		return []string{message}
	}

	var chunks []string
	var sb strings.Builder

	flush := func() {
		if sb.Len() > 0 {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
	}

	for line := range strings.SplitSeq(message, "\n") {
		needed := len(line)
		if sb.Len() > 0 {
			needed++
		}

		if sb.Len()+needed <= limit {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(line)
			continue
		}

		flush()

		// 한 줄 자체가 limit를 넘으면 문자 경계에서 강제로 자릅니다.
		for len(line) > limit {
			var chunk string
			chunk, line = safeSplit(line, limit)
			chunks = append(chunks, chunk)
		}
		sb.WriteString(line)
	}
	flush()

	return chunks
}
