package host

import (
	"fmt"
	"time"
)

// Actor identifies the process that took a reading.
type Actor struct {
	// Hostname is the machine name the reading was taken on.
	Hostname string
	// Username is the account the reporting process runs as.
	Username string
	// Executable is the image name of the reporting process.
	Executable string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// Snapshot is a kernel version reading at a point in time.
type Snapshot struct {
	// Timestamp is when the reading was taken.
	Timestamp time.Time
	// Reporter is the process that took the reading.
	Reporter *Actor
	// Strategy is the ntdll binding used: "static" or "dynamic".
	Strategy string
	// Major is the kernel major version.
	Major uint32
	// Minor is the kernel minor version.
	Minor uint32
	// Build is the kernel build number.
	Build uint32
}

// Version renders the triple as "major.minor.build".
func (s *Snapshot) Version() string {
	return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Build)
}

// Clone returns a copy of the snapshot that shares no pointers with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	cloned := *s
	cloned.Reporter = s.Reporter.Clone()

	return &cloned
}
