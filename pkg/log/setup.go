package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// 생성되는 로그 파일의 기본 확장자
	fileExt = "log"

	// 기본 로그 로테이션 정책
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	// Setup()이 프로세스 생명주기 동안 단 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	// 최초 초기화 시 생성된 Closer와 에러를 보관하여, Setup 재호출 시 동일한 결과를 반환합니다.
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화하고 설정된 옵션에 따라 콘솔/파일 출력을 구성합니다.
//
// 반환된 Closer는 defer를 통해 반드시 닫아야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(opts)
	})

	return globalCloser, globalSetupErr
}

func setupInternal(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 기본 출력은 버리고 모든 출력을 hook에서 처리합니다.
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	textFormatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if opts.CallerPathPrefix != "" {
				if cut, found := strings.CutPrefix(function, opts.CallerPathPrefix); found {
					function = "..." + cut
				}
			}
			return
		},
	}

	h := &hook{formatter: textFormatter}

	if opts.EnableConsoleLog {
		h.consoleWriter = opts.ConsoleWriter
		if h.consoleWriter == nil {
			h.consoleWriter = os.Stdout
		}
	}

	var closers []io.Closer
	if opts.EnableFileLog {
		logDir := opts.Dir
		if logDir == "" {
			logDir = "logs"
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
		}

		newLogger := func(suffix string) *lumberjack.Logger {
			name := opts.Name
			if suffix != "" {
				name += "." + suffix
			}
			return &lumberjack.Logger{
				Filename:   filepath.Join(logDir, fmt.Sprintf("%s.%s", name, fileExt)),
				MaxSize:    valueOrDefault(opts.MaxSizeMB, defaultMaxSizeMB),
				MaxBackups: valueOrDefault(opts.MaxBackups, defaultMaxBackups),
				MaxAge:     opts.MaxAge,
				LocalTime:  true,
			}
		}

		mainLogger := newLogger("")
		h.mainWriter = mainLogger
		closers = append(closers, mainLogger)

		if opts.EnableCriticalLog {
			criticalLogger := newLogger("critical")
			h.criticalWriter = criticalLogger
			closers = append(closers, criticalLogger)
		}
		if opts.EnableVerboseLog {
			verboseLogger := newLogger("verbose")
			h.verboseWriter = verboseLogger
			closers = append(closers, verboseLogger)
		}
	}

	logrus.AddHook(h)

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그로 프로세스가 종료되기 직전에도 파일 리소스를 정리합니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

func valueOrDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
