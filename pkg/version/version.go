package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/folioworks/folio/pkg/version.Version=...".
var (
	Version   = "0.1.0"
	AppName   = "folio"
	BuildDate = "unknown"
)

type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s (built %s, %s, %s)", i.AppName, i.Version, i.BuildDate, i.GoVersion, i.Platform)
}
