//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetectActor ensures hostname, username and executable are detected and non-empty.
func TestDetectActor(t *testing.T) {
	t.Parallel()

	a, err := DetectActor()
	require.NoError(t, err)
	require.NotEmpty(t, a.Hostname)
	require.NotEmpty(t, a.Username)
	require.NotEmpty(t, a.Executable)
}

// TestExecutableName_CurrentProcess finds the test binary in the process table.
func TestExecutableName_CurrentProcess(t *testing.T) {
	t.Parallel()

	name, err := executableName(os.Getpid())
	require.NoError(t, err)
	require.NotEmpty(t, name)
}
