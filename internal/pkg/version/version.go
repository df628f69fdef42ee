// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 빌드 예:
//
//	go build -ldflags "-X github.com/darkkaiser/proactive-event-sender/internal/pkg/version.appVersion=v1.2.0" ./cmd/proactive-event-sender
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 선언합니다.
var readBuildInfo = debug.ReadBuildInfo

// 링커 플래그(-ldflags -X)로 주입되는 값입니다. 직접 읽지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	buildDate     = ""
)

// Info 애플리케이션의 빌드 정보입니다.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Dirty     bool   `json:"dirty"`
}

// Get 현재 실행 파일의 빌드 정보를 반환합니다.
func Get() Info {
	return resolve(Info{
		Version:   strings.TrimSpace(appVersion),
		Commit:    strings.TrimSpace(gitCommitHash),
		BuildDate: strings.TrimSpace(buildDate),
	})
}

// resolve 누락된 항목을 런타임 정보와 debug.BuildInfo의 VCS 메타데이터로 채웁니다.
func resolve(bi Info) Info {
	bi.GoVersion = runtime.Version()
	bi.OS = runtime.GOOS
	bi.Arch = runtime.GOARCH

	if info, ok := readBuildInfo(); ok && info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				bi.Dirty = s.Value == "true"
			}
		}
		if bi.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			bi.Version = info.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}

	return bi
}

// String 사람이 읽기 쉬운 한 줄 형식으로 빌드 정보를 반환합니다.
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.Dirty {
		commit += "-dirty"
	}

	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)", i.Version, commit, i.BuildDate, i.GoVersion, i.OS, i.Arch)
}
