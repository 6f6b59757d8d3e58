//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/nt-version/internal/domain/host"
)

// DetectActor gathers host, user and process information for reports.
func DetectActor() (*host.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	executable, err := executableName(os.Getpid())
	if err != nil {
		return nil, fmt.Errorf("executable name: %w", err)
	}

	return &host.Actor{
		Hostname:   hostname,
		Username:   currentUser.Username,
		Executable: executable,
	}, nil
}

// executableName returns the image name of the process with the given pid,
// falling back to os.Args[0] when the process table has no entry.
func executableName(pid int) (string, error) {
	process, err := ps.FindProcess(pid)
	if err != nil {
		return "", err
	}

	if process == nil || process.Executable() == "" {
		return filepath.Base(os.Args[0]), nil
	}

	return process.Executable(), nil
}
