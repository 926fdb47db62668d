package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
)

var (
	// Vcs is the commit hash for the binary build
	Vcs string
	// BuildTime is the date for the binary build
	BuildTime string
	// BuildVersion is the kvsample version. Will be overwritten from build.
	BuildVersion string
)

// ApplicationID is sent to Azure as the telemetry application ID.
// azcore rejects values longer than 24 characters.
const ApplicationID = "kvsample"

// GetUserAgent returns a user agent of the format: kvsample/<component>/<version> (<goos>/<goarch>) <vcs>/<timestamp>
func GetUserAgent(component string) string {
	return fmt.Sprintf("kvsample/%s/%s (%s/%s) %s/%s", component, BuildVersion, runtime.GOOS, runtime.GOARCH, Vcs, BuildTime)
}

// PrintVersion writes the current build version to w as JSON
func PrintVersion(w io.Writer) error {
	pv := struct {
		BuildVersion string `json:"buildVersion"`
		GitCommit    string `json:"gitCommit"`
		BuildDate    string `json:"buildDate"`
		GoVersion    string `json:"goVersion"`
		Platform     string `json:"platform"`
	}{
		BuildDate:    BuildTime,
		BuildVersion: BuildVersion,
		GitCommit:    Vcs,
		GoVersion:    runtime.Version(),
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	res, err := json.Marshal(pv)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", res)
	return err
}
