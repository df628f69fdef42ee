package log

import "github.com/sirupsen/logrus"

// silentFormatter 아무런 동작도 하지 않는 포맷터입니다.
// 기본 출력은 io.Discard로 버려지고 실제 포맷팅은 hook에서 수행되므로, 불필요한 포맷팅 연산을 생략합니다.
type silentFormatter struct{}

// Format 아무런 변환도 수행하지 않고 nil을 반환합니다.
func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}
