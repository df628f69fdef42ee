package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	// FatalLevel 로그를 기록한 후 os.Exit(1)을 호출합니다. 실행을 더 이상 진행할 수 없을 때 사용합니다.
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel 실행은 계속되지만 확인이 필요한 오류입니다. (예: 특정 스킬의 이벤트 전송 실패)
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 당장 오류는 아니지만 설정 점검이 필요한 상태입니다.
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 정상적인 실행 흐름을 기록합니다.
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 문제 해결을 위한 상세 정보입니다.
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel 가장 세밀한 추적 정보입니다.
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// Fields logrus.Fields의 별칭입니다.
type Fields = logrus.Fields

// Entry logrus.Entry의 별칭입니다.
type Entry = logrus.Entry

// Formatter logrus.Formatter의 별칭입니다.
type Formatter = logrus.Formatter
