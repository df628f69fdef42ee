package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "proactive-event-sender"

	// DefaultFilename 실행 인자로 설정 파일이 지정되지 않았을 때 참조하는 기본 설정 파일명입니다.
	// 이 파일이 없으면 기본값과 환경 변수만으로 동작합니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓸 환경 변수의 접두사입니다.
	// 예: PROACTIVE_AUTH__TOKEN_URL -> auth.token_url
	EnvPrefix = "PROACTIVE_"
)

const (
	DefaultSkillsFilename    = "skills.json"
	DefaultEndpointsFilename = "config.json"
	DefaultTemplateFilename  = "message-template.json"

	DefaultTokenURL = "https://api.amazon.com/auth/o2/token"
	DefaultScope    = "alexa::proactive_events"

	DefaultHTTPTimeout      = 30 * time.Second
	DefaultMaxResponseBytes = 1 * 1024 * 1024

	DefaultLogDir    = "logs"
	DefaultLogMaxAge = 30
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug     bool           `json:"debug"`
	Files     FilesConfig    `json:"files"`
	Auth      AuthConfig     `json:"auth"`
	HTTP      HTTPConfig     `json:"http"`
	Dispatch  DispatchConfig `json:"dispatch"`
	Log       LogConfig      `json:"log"`
	Notifiers NotifierConfig `json:"notifiers"`
}

// FilesConfig 실행 시 읽어들일 데이터 파일들의 경로
type FilesConfig struct {
	Skills    string `json:"skills" validate:"required"`
	Endpoints string `json:"endpoints" validate:"required"`
	Template  string `json:"template" validate:"required"`
}

// AuthConfig OAuth2 Client Credentials 토큰 발급 설정
type AuthConfig struct {
	TokenURL string `json:"token_url" validate:"required,http_url"`
	Scope    string `json:"scope" validate:"required"`
}

// HTTPConfig 외부 HTTP 호출에 공통으로 적용되는 설정
type HTTPConfig struct {
	Timeout          time.Duration `json:"timeout" validate:"gt=0"`
	MaxResponseBytes int64         `json:"max_response_bytes" validate:"gte=0"`
}

// DispatchConfig 스킬별 이벤트 전송의 동시성과 속도 제한 설정
//
// MaxConcurrency가 0이면 모든 스킬을 동시에 전송하고, RateLimit이 0이면 속도 제한을 두지 않습니다.
type DispatchConfig struct {
	MaxConcurrency int     `json:"max_concurrency" validate:"gte=0"`
	RateLimit      float64 `json:"rate_limit" validate:"gte=0"`
	RateBurst      int     `json:"rate_burst" validate:"gte=0"`
}

// LogConfig 로그 파일 설정
type LogConfig struct {
	Dir     string `json:"dir"`
	MaxAge  int    `json:"max_age" validate:"gte=0"`
	FileLog bool   `json:"file_log"`
}

// NotifierConfig 실행 결과를 알릴 채널 설정
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 봇 토큰 및 채팅 ID 정보를 담는 설정 구조체
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`

	// APIEndpoint 봇 API 주소 형식("https://api.telegram.org/bot%s/%s")입니다. 비어있으면 공식 주소를 사용합니다.
	APIEndpoint string `json:"api_endpoint" validate:"omitempty,contains=%s"`
}

// Default 설정 파일과 환경 변수가 없을 때 사용되는 기본 설정을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		Files: FilesConfig{
			Skills:    DefaultSkillsFilename,
			Endpoints: DefaultEndpointsFilename,
			Template:  DefaultTemplateFilename,
		},
		Auth: AuthConfig{
			TokenURL: DefaultTokenURL,
			Scope:    DefaultScope,
		},
		HTTP: HTTPConfig{
			Timeout:          DefaultHTTPTimeout,
			MaxResponseBytes: DefaultMaxResponseBytes,
		},
		Log: LogConfig{
			Dir:     DefaultLogDir,
			MaxAge:  DefaultLogMaxAge,
			FileLog: true,
		},
	}
}

// Load 기본값, 설정 파일, 환경 변수 순서로 설정을 병합하여 AppConfig 객체를 생성합니다.
//
// required가 false이면 설정 파일이 존재하지 않아도 에러로 처리하지 않습니다.
func Load(filename string, required bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드
	if _, err := os.Stat(filename); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || required {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
	} else if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위)
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (정의되지 않은 필드는 에러)
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := checkStruct(validate, &appConfig, "AppConfig"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
