//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestDial_AppliesOptions checks the call timeout option and ignores non-positive values.
func TestDial_AppliesOptions(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "127.0.0.1:50551", WithCallTimeout(time.Second), WithCallTimeout(0))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	require.Equal(t, time.Second, c.callTimeout)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_CloseNil ensures Close tolerates a nil client.
func TestClient_CloseNil(t *testing.T) {
	t.Parallel()

	var c *Client

	require.NoError(t, c.Close())
}
