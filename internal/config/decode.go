package config

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io/fs"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/file"
)

// loadList JSON 배열 파일을 읽어 T 타입의 슬라이스로 변환합니다.
//
// 배열 원소에 구조체에 정의되지 않은 필드가 있으면 에러를 반환합니다.
// 파일 내용이 null이면 빈 슬라이스를 반환합니다.
func loadList[T any](filename, label string) ([]T, error) {
	data, err := file.Provider(filename).ReadBytes()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("%s 파일을 찾을 수 없습니다: '%s'", label, filename))
		}
		return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("%s 파일을 읽을 수 없습니다: '%s'", label, filename))
	}

	var raw []any
	if err := stdjson.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("%s 파일은 JSON 배열이어야 합니다: '%s'", label, filename))
	}

	out := make([]T, 0, len(raw))
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "디코더 생성에 실패했습니다")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 파일의 항목 형식이 올바르지 않습니다: '%s'", label, filename))
	}

	return out, nil
}
