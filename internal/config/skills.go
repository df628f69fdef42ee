package config

import (
	"fmt"
	"strings"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
)

// SkillConfig 이벤트를 전송할 스킬 하나의 자격 증명과 메시지 설정입니다.
type SkillConfig struct {
	SkillName    string `json:"skill_name"`
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
	Message      string `json:"message"`

	// ValidityHours 이벤트의 유효 시간(시간 단위)입니다. 소수 값도 허용하며 밀리초 단위로 절사됩니다.
	ValidityHours float64 `json:"validity_hours"`
}

// DisplayName 로그와 에러 메시지에 사용할 스킬 이름을 반환합니다.
func (s SkillConfig) DisplayName(index int) string {
	if s.SkillName != "" {
		return s.SkillName
	}
	return fmt.Sprintf("#%d", index)
}

// LoadSkills 스킬 목록 파일(JSON 배열)을 읽어들입니다.
func LoadSkills(filename string) ([]SkillConfig, error) {
	return loadList[SkillConfig](filename, "스킬 목록")
}

// IncompleteSkills client_id 또는 client_secret이 비어있는 스킬의 이름을 선언 순서대로 반환합니다.
func IncompleteSkills(skills []SkillConfig) []string {
	var names []string
	for i, s := range skills {
		if err := validate.Struct(s); err != nil {
			names = append(names, s.DisplayName(i))
		}
	}
	return names
}

// ValidateSkills 모든 스킬의 자격 증명이 채워져 있는지 검증합니다.
// 하나라도 누락된 스킬이 있으면 해당 스킬 이름을 모두 포함한 InvalidInput 에러를 반환합니다.
//
// 빈 목록은 에러가 아닙니다.
func ValidateSkills(skills []SkillConfig) error {
	names := IncompleteSkills(skills)
	if len(names) == 0 {
		return nil
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("client_id 또는 client_secret이 설정되지 않은 스킬이 있습니다: %s", strings.Join(names, ", ")))
}
