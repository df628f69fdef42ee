package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_ConsoleOnly(t *testing.T) {
	resetForTest(t)

	var buf bytes.Buffer
	opts := Options{
		Name:             "test-app",
		Level:            InfoLevel,
		EnableConsoleLog: true,
		ConsoleWriter:    &buf,
	}

	c, err := Setup(opts)
	require.NoError(t, err)
	require.NotNil(t, c)

	logrus.Info("콘솔 출력 확인")
	logrus.Debug("출력되지 않아야 함")

	assert.Contains(t, buf.String(), "콘솔 출력 확인")
	assert.NotContains(t, buf.String(), "출력되지 않아야 함")
}

func TestSetup_FileLog(t *testing.T) {
	resetForTest(t)

	dir := filepath.Join(t.TempDir(), "logs")
	opts := Options{
		Name:              "test-app",
		Dir:               dir,
		Level:             TraceLevel,
		EnableFileLog:     true,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	}

	c, err := Setup(opts)
	require.NoError(t, err)

	logrus.Info("info message")
	logrus.Error("error message")
	logrus.Debug("debug message")

	require.NoError(t, c.Close())

	mainLog, err := os.ReadFile(filepath.Join(dir, "test-app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "info message")
	assert.Contains(t, string(mainLog), "error message")
	assert.NotContains(t, string(mainLog), "debug message")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "test-app.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "error message")
	assert.NotContains(t, string(criticalLog), "info message")

	verboseLog, err := os.ReadFile(filepath.Join(dir, "test-app.verbose.log"))
	require.NoError(t, err)
	assert.Contains(t, string(verboseLog), "debug message")
	assert.NotContains(t, string(verboseLog), "info message")
}

func TestSetup_FileLogDisabled(t *testing.T) {
	resetForTest(t)

	dir := filepath.Join(t.TempDir(), "logs")
	_, err := Setup(Options{Name: "test-app", Dir: dir})
	require.NoError(t, err)

	logrus.Info("어디에도 기록되지 않음")

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "파일 로그가 비활성화되면 디렉토리를 만들지 않아야 합니다")
}

func TestSetup_InvalidOptions(t *testing.T) {
	resetForTest(t)

	c, err := Setup(Options{})
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestSetup_OnlyOnce(t *testing.T) {
	resetForTest(t)

	var first, second bytes.Buffer

	c1, err := Setup(Options{Name: "first", EnableConsoleLog: true, ConsoleWriter: &first})
	require.NoError(t, err)
	c2, err := Setup(Options{Name: "second", EnableConsoleLog: true, ConsoleWriter: &second})
	require.NoError(t, err)

	assert.Same(t, c1, c2)

	logrus.Info("한 번만 초기화")
	assert.Contains(t, first.String(), "한 번만 초기화")
	assert.Empty(t, second.String())
}

func TestCloser_Idempotent(t *testing.T) {
	resetForTest(t)

	var buf bytes.Buffer
	c, err := Setup(Options{Name: "test-app", EnableConsoleLog: true, ConsoleWriter: &buf})
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	logrus.Info("닫힌 뒤의 로그")
	assert.NotContains(t, buf.String(), "닫힌 뒤의 로그")
}

func TestOptions_Validate(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "정상", opts: Options{Name: "app"}},
		{name: "이름 누락", opts: Options{}, wantErr: "Name"},
		{name: "디렉토리 경로가 파일", opts: Options{Name: "app", Dir: filePath}, wantErr: "이미 파일로 존재"},
		{name: "음수 MaxAge", opts: Options{Name: "app", MaxAge: -1}, wantErr: "MaxAge"},
		{name: "음수 MaxSizeMB", opts: Options{Name: "app", MaxSizeMB: -1}, wantErr: "MaxSizeMB"},
		{name: "음수 MaxBackups", opts: Options{Name: "app", MaxBackups: -1}, wantErr: "MaxBackups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfiles(t *testing.T) {
	cli := NewCLIOptions("app")
	assert.Equal(t, "app", cli.Name)
	assert.Equal(t, InfoLevel, cli.Level)
	assert.True(t, cli.EnableConsoleLog)
	assert.True(t, cli.EnableFileLog)
	assert.False(t, cli.EnableVerboseLog)
	assert.NoError(t, cli.Validate())

	debug := NewDebugOptions("app")
	assert.Equal(t, TraceLevel, debug.Level)
	assert.True(t, debug.EnableVerboseLog)
	assert.True(t, debug.ReportCaller)
}
