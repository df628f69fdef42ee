package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/iancoleman/strcase"
)

// buildSummaryMessage 실행 요약을 HTML 형식의 텔레그램 메시지로 만듭니다.
//
// 스킬 이름과 에러 메시지는 사용자 입력이므로 모두 이스케이프합니다.
// 실패한 스킬은 채팅방에서 검색할 수 있도록 해시태그를 함께 붙입니다.
func buildSummaryMessage(summary *contract.DispatchSummary) string {
	succeeded, failed := summary.Counts()

	var sb strings.Builder

	icon := "✅"
	if failed > 0 {
		icon = "⚠️"
	}
	fmt.Fprintf(&sb, "%s <b>Proactive Event 전송 결과</b>\n", icon)
	fmt.Fprintf(&sb, "리전: %s / 환경: %s\n", html.EscapeString(summary.Region), html.EscapeString(summary.Environment))
	fmt.Fprintf(&sb, "성공: %d, 실패: %d (소요 시간: %s)\n", succeeded, failed, summary.Duration.Round(time.Millisecond))

	for _, res := range summary.Results {
		sb.WriteString("\n")
		if res.Succeeded() {
			fmt.Fprintf(&sb, "• %s: %d", html.EscapeString(res.SkillName), res.StatusCode)
			continue
		}

		label := html.EscapeString(res.SkillName)
		if tag := hashtag(res.SkillName); tag != "" {
			label += " " + tag
		}
		fmt.Fprintf(&sb, "• %s: <i>%s</i>\n  %s", label, apperrors.UnderlyingType(res.Err), html.EscapeString(res.Err.Error()))
	}

	return sb.String()
}

// hashtag 스킬 이름을 텔레그램 해시태그로 변환합니다. 변환 결과가 비어있으면 빈 문자열을 반환합니다.
func hashtag(name string) string {
	tag := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, strcase.ToSnake(name))
	tag = strings.Trim(tag, "_")

	if tag == "" {
		return ""
	}
	return "#" + tag
}
