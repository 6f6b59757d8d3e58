package ntversion

import "fmt"

// Strategy names the way the export is reached.
type Strategy string

const (
	// StrategyStatic binds through golang.org/x/sys/windows at build time.
	StrategyStatic Strategy = "static"
	// StrategyDynamic resolves the export by name on first use.
	StrategyDynamic Strategy = "dynamic"
)

// Version is the kernel version triple.
type Version struct {
	// Major is the major version, e.g. 10 on Windows 10 and 11.
	Major uint32
	// Minor is the minor version.
	Minor uint32
	// Build is the build number without the build-type flags.
	Build uint32
}

// String renders the version as "major.minor.build".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// Get queries the running kernel for its version.
// Build carries only the low 16 bits of the build word: the 0xF0000000
// free/checked flags that ntdll sets are cleared on both strategies, since
// the x/sys binding behind the static one already discards them.
// The error is always nil for the static strategy; for the dynamic strategy it
// wraps ErrUnresolved when ntdll.dll does not export RtlGetNtVersionNumbers.
func Get() (Version, error) {
	major, minor, build, err := versionNumbers()
	if err != nil {
		return Version{}, err
	}

	return Version{
		Major: major,
		Minor: minor,
		Build: build & buildNumberMask,
	}, nil
}

// MustGet is like Get but panics if the export cannot be resolved.
func MustGet() Version {
	v, err := Get()
	if err != nil {
		panic(fmt.Sprintf("ntversion: %v", err))
	}

	return v
}

// ActiveStrategy reports which strategy Get uses in this build.
func ActiveStrategy() Strategy {
	return activeStrategy
}
