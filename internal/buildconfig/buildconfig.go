package buildconfig

// Build-time variables injected via ldflags:
//
//	-X github.com/modig-dev/insurance/internal/buildconfig.version=v1.2.3
var (
	version = "dev"
	commit  = "unknown"
)

// Info identifies the running build.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// Current returns the build info baked into this binary.
func Current() Info {
	return Info{Version: version, Commit: commit}
}
