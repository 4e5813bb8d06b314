// SPDX-License-Identifier: Apache-2.0

package toggles

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarimov/casesync/internal/logger"
)

func writeToggles(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestRegistry_EmptyPathEnablesEverything(t *testing.T) {
	reg, err := NewRegistry("", logger.Nop())
	require.NoError(t, err)
	defer reg.Close()

	assert.True(t, reg.CleanlinessTrackingEnabled("any-domain"))
}

func TestRegistry_DomainOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toggles.yaml")
	writeToggles(t, path, `
cleanliness_tracking:
  default: true
  domains:
    slow-domain: false
`)

	reg, err := NewRegistry(path, logger.Nop())
	require.NoError(t, err)
	defer reg.Close()

	assert.False(t, reg.CleanlinessTrackingEnabled("slow-domain"))
	assert.True(t, reg.CleanlinessTrackingEnabled("other-domain"))
}

func TestRegistry_DefaultOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toggles.yaml")
	writeToggles(t, path, `
cleanliness_tracking:
  default: false
  domains:
    fast-domain: true
`)

	reg, err := NewRegistry(path, logger.Nop())
	require.NoError(t, err)
	defer reg.Close()

	assert.True(t, reg.CleanlinessTrackingEnabled("fast-domain"))
	assert.False(t, reg.CleanlinessTrackingEnabled("other-domain"))
}

func TestRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent.yaml"), logger.Nop())
	require.Error(t, err)
}

func TestRegistry_HotReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toggles.yaml")
	writeToggles(t, path, "cleanliness_tracking:\n  default: true\n")

	reg, err := NewRegistry(path, logger.Nop())
	require.NoError(t, err)
	defer reg.Close()

	require.True(t, reg.CleanlinessTrackingEnabled("some-domain"))

	writeToggles(t, path, "cleanliness_tracking:\n  default: false\n")

	require.Eventually(t, func() bool {
		return !reg.CleanlinessTrackingEnabled("some-domain")
	}, 3*time.Second, 10*time.Millisecond)
}

func TestRegistry_BadReloadKeepsLastGoodState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toggles.yaml")
	writeToggles(t, path, "cleanliness_tracking:\n  default: false\n")

	reg, err := NewRegistry(path, logger.Nop())
	require.NoError(t, err)
	defer reg.Close()

	require.False(t, reg.CleanlinessTrackingEnabled("some-domain"))

	writeToggles(t, path, "cleanliness_tracking: [broken")

	// The broken file must not flip anything; give the watcher a moment
	// to see the write.
	time.Sleep(200 * time.Millisecond)
	assert.False(t, reg.CleanlinessTrackingEnabled("some-domain"))
}
