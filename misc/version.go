// Package misc keeps program identification which is set at build time.
package misc

// Overwritten with -ldflags "-X ttrace/misc.version=..." by the build.
var (
	appName = "ttrace"
	version = "dev"
	gitHash = "nohash"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
