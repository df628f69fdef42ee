// Package event Proactive Event 페이로드를 템플릿으로부터 만들고 엔드포인트로 전송합니다.
package event

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"time"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/darkkaiser/proactive-event-sender/internal/service/contract"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// TimeLayout timestamp와 expiryTime에 사용하는 ISO-8601(UTC, 밀리초) 형식입니다.
	TimeLayout = "2006-01-02T15:04:05.000Z"

	creatorPath     = "event.payload.messageGroup.creator"
	creatorNamePath = creatorPath + ".name"
	timestampPath   = "timestamp"
	expiryTimePath  = "expiryTime"

	// maxEventTimeMs 이벤트 시각으로 표현할 수 있는 최대 Unix 밀리초입니다. (ECMAScript Date 범위, ±100,000,000일)
	maxEventTimeMs = 8.64e15
)

// Template 메시지 템플릿 파일로부터 읽어들인 이벤트의 기본 형태입니다.
// 읽기 전용이며 여러 고루틴에서 동시에 Build를 호출해도 안전합니다.
type Template struct {
	k *koanf.Koanf
}

var _ contract.EventBuilder = (*Template)(nil)

// LoadTemplate 메시지 템플릿 파일(JSON 객체)을 읽어들입니다.
func LoadTemplate(filename string) (*Template, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("메시지 템플릿 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("메시지 템플릿 파일을 해석할 수 없습니다: '%s'", filename))
	}

	return NewTemplate(k)
}

// NewTemplate 이미 로드된 koanf 인스턴스로 템플릿을 만듭니다.
func NewTemplate(k *koanf.Koanf) (*Template, error) {
	if _, ok := k.Get(creatorPath).(map[string]any); !ok {
		return nil, apperrors.New(apperrors.InvalidInput, fmt.Sprintf("메시지 템플릿에 '%s' 객체가 없습니다", creatorPath))
	}

	return &Template{k: k}, nil
}

// Build 템플릿을 깊은 복사한 뒤 creator 이름, timestamp, expiryTime을 채운 이벤트를 반환합니다.
//
// expiryTime은 ts + validityHours × 3,600,000 밀리초이며, 밀리초 미만은 버립니다.
func (t *Template) Build(message string, ts time.Time, validityHours float64) (contract.Event, error) {
	ts = ts.UTC().Truncate(time.Millisecond)

	// time.Duration은 약 292년에서 넘치므로 밀리초 단위 Unix 시각으로 계산합니다.
	expiryMs := float64(ts.UnixMilli()) + validityHours*float64(time.Hour/time.Millisecond)
	if math.IsNaN(expiryMs) || math.Abs(expiryMs) > maxEventTimeMs {
		return nil, apperrors.New(apperrors.InvalidInput, fmt.Sprintf("validity_hours(%v)로 계산한 expiryTime이 표현 가능한 범위를 벗어났습니다", validityHours))
	}
	expiry := time.UnixMilli(ts.UnixMilli() + int64(validityHours*float64(time.Hour/time.Millisecond))).UTC()

	k := t.k.Copy()
	for key, value := range map[string]any{
		creatorNamePath: message,
		timestampPath:   FormatTime(ts),
		expiryTimePath:  FormatTime(expiry),
	} {
		if err := k.Set(key, value); err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, fmt.Sprintf("이벤트 필드('%s')를 설정할 수 없습니다", key))
		}
	}

	return contract.Event(k.Raw()), nil
}

// FormatTime 시각을 이벤트에서 사용하는 UTC ISO-8601 문자열로 변환합니다.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
