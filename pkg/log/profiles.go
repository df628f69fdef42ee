package log

// NewCLIOptions 일회성 CLI 실행에 맞춘 기본 로그 설정을 반환합니다.
// 실행 결과는 콘솔로 확인하고, 같은 내용을 로테이션되는 파일에도 남깁니다.
func NewCLIOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  10,
		MaxBackups: 10,

		EnableFileLog:     true,
		EnableCriticalLog: true,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller: false,
	}
}

// NewDebugOptions 문제 분석용(--debug) 로그 설정을 반환합니다.
func NewDebugOptions(appName string) Options {
	opts := NewCLIOptions(appName)

	opts.Level = TraceLevel
	opts.EnableVerboseLog = true
	opts.ReportCaller = true

	return opts
}
