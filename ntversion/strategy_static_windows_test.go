//go:build !fallback

package ntversion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestActiveStrategy_Static verifies the default build binds statically and never fails.
func TestActiveStrategy_Static(t *testing.T) {
	t.Parallel()

	require.Equal(t, StrategyStatic, ActiveStrategy())

	_, _, _, err := versionNumbers()
	require.NoError(t, err)
}
