package utils

import (
	"runtime/debug"
)

const (
	unknownVersion = "unknown"
	develVersion   = "(devel)"
)

// Version is overridden at link time with -ldflags "-X .../utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion reports the linked version, then the module version
// recorded in the build info, then "unknown".
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
