package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/darkkaiser/proactive-event-sender/internal/config"
	"github.com/darkkaiser/proactive-event-sender/internal/pkg/version"
	applog "github.com/darkkaiser/proactive-event-sender/pkg/log"
)

const component = "main"

const (
	exitSuccess = 0
	exitFailure = 1
)

// cliFlags 명령행 인자 값입니다.
type cliFlags struct {
	environment string
	region      string
	message     string

	configFile string
	skills     string
	endpoints  string
	template   string
	report     string

	debug bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

// run 인자를 해석하고 설정과 로그를 초기화한 뒤 이벤트 전송을 수행합니다. 프로세스 종료 코드를 반환합니다.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "[ERROR] 실행 인자 오류: %v\n", err)
		return exitFailure
	}

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := loadAppConfig(flags)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		return exitFailure
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDebugOptions(config.AppName)
	} else {
		logOpts = applog.NewCLIOptions(config.AppName)
	}
	logOpts.Dir = appConfig.Log.Dir
	logOpts.MaxAge = appConfig.Log.MaxAge
	logOpts.EnableFileLog = appConfig.Log.FileLog
	logOpts.ConsoleWriter = stdout
	logOpts.CallerPathPrefix = "github.com/darkkaiser/proactive-event-sender"

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] 로그 시스템 초기화 실패. 실행을 중단합니다. (Cause: %v)\n", err)
		return exitFailure
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	applog.WithComponentAndFields(component, applog.Fields{
		"version":     version.Get().String(),
		"region":      flags.region,
		"environment": flags.environment,
	}).Info("Proactive Event 전송 시작")

	applog.WithComponentAndFields(component, applog.Fields{
		"message":   flags.message,
		"skills":    appConfig.Files.Skills,
		"endpoints": appConfig.Files.Endpoints,
		"template":  appConfig.Files.Template,
		"report":    flags.report,
	}).Debug("실행 인자")

	if err := newApp(appConfig, flags).execute(ctx); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("실행을 중단합니다")

		return exitFailure
	}

	return exitSuccess
}

// parseFlags 명령행 인자를 해석합니다.
func parseFlags(args []string, stdout, stderr io.Writer) (*cliFlags, error) {
	flags := &cliFlags{}

	app := kingpin.New(config.AppName, "Alexa 스킬별로 액세스 토큰을 발급받아 Proactive Event를 전송합니다.")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Version(version.Get().String())
	app.HelpFlag.Short('h')

	app.Flag("environment", "전송 대상 환경 (예: dev, pro)").Short('e').Required().StringVar(&flags.environment)
	app.Flag("region", "전송 대상 리전 (예: NA, EU, FE)").Short('r').Required().StringVar(&flags.region)
	app.Flag("message", "모든 스킬의 메시지를 이 값으로 대체합니다").Short('m').StringVar(&flags.message)

	app.Flag("config", "애플리케이션 설정 파일 경로 (기본값: "+config.DefaultFilename+")").Short('c').StringVar(&flags.configFile)
	app.Flag("skills", "스킬 목록 파일 경로").StringVar(&flags.skills)
	app.Flag("endpoints", "엔드포인트 목록 파일 경로").StringVar(&flags.endpoints)
	app.Flag("template", "메시지 템플릿 파일 경로").StringVar(&flags.template)
	app.Flag("report", "실행 결과를 저장할 JSON 파일 경로").StringVar(&flags.report)
	app.Flag("debug", "디버그 로그를 출력합니다").BoolVar(&flags.debug)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	return flags, nil
}

// loadAppConfig 설정 파일을 읽고 명령행 인자로 지정된 값을 덮어씁니다.
//
// 설정 파일을 명시하지 않았으면 기본 설정 파일이 없어도 기본값으로 동작합니다.
func loadAppConfig(flags *cliFlags) (*config.AppConfig, error) {
	filename, required := flags.configFile, true
	if filename == "" {
		filename, required = config.DefaultFilename, false
	}

	appConfig, err := config.Load(filename, required)
	if err != nil {
		return nil, err
	}

	if flags.skills != "" {
		appConfig.Files.Skills = flags.skills
	}
	if flags.endpoints != "" {
		appConfig.Files.Endpoints = flags.endpoints
	}
	if flags.template != "" {
		appConfig.Files.Template = flags.template
	}
	if flags.debug {
		appConfig.Debug = true
	}

	return appConfig, nil
}
