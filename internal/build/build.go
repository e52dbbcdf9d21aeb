// Package build provides build-time information about the application.
package build

import (
	"encoding/json"
)

// set via -ldflags "-X baseline/internal/build.version=..."
var (
	name            string
	version         string
	releaseURL      string
	defaultLogLevel string
)

// DevVersion marks a build made without release metadata. Update checks
// are skipped for it.
const DevVersion = "vX.X.X"

type BuildInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ReleaseURL      string `json:"releaseURL"`
	DefaultLogLevel string `json:"defaultLogLevel"`
}

// JSON returns the build info as a JSON string.
func (b BuildInfo) JSON() string {
	data, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	return string(data)
}

// InstallScriptURL is where the release's install script lives.
func (b BuildInfo) InstallScriptURL() string {
	if b.ReleaseURL == "" {
		return ""
	}
	url := b.ReleaseURL
	if url[len(url)-1] != '/' {
		url += "/"
	}
	return url + "install.sh"
}

func Info() BuildInfo {
	bi := BuildInfo{
		Name:            name,
		Version:         version,
		ReleaseURL:      releaseURL,
		DefaultLogLevel: defaultLogLevel,
	}
	if bi.Name == "" {
		bi.Name = "baseline"
	}
	if bi.Version == "" {
		bi.Version = DevVersion
	}
	if bi.DefaultLogLevel == "" {
		bi.DefaultLogLevel = "warn"
	}
	return bi
}
