package log

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

// resetForTest 전역 로거와 Setup 상태를 초기화하고, 테스트 종료 시 원래 상태로 복원합니다.
func resetForTest(t *testing.T) {
	t.Helper()

	std := logrus.StandardLogger()
	origLevel := std.GetLevel()
	origOut := std.Out
	origFormatter := std.Formatter
	origReportCaller := std.ReportCaller

	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil
	std.ReplaceHooks(make(logrus.LevelHooks))

	t.Cleanup(func() {
		if globalCloser != nil {
			_ = globalCloser.Close()
		}
		setupOnce = sync.Once{}
		globalCloser = nil
		globalSetupErr = nil

		std.ReplaceHooks(make(logrus.LevelHooks))
		std.SetLevel(origLevel)
		std.SetOutput(origOut)
		std.SetFormatter(origFormatter)
		std.SetReportCaller(origReportCaller)
	})
}

// failingWriter 항상 실패하는 io.Writer입니다.
type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, io.ErrClosedPipe
}
