package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatcher_ReportsExternalEdit(t *testing.T) {
	core, logged := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	store := NewStore(newTestStore(t).Path(), logger)
	require.NoError(t, store.Save(NewDocument()))
	store.ConsumeOwnWrite() // watcher not running yet, reset the flag

	watcher, err := NewWatcher(store, logger)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	// Simulate the host application rewriting the file.
	require.NoError(t, os.WriteFile(store.Path(),
		[]byte(`{"mcpServers": {}, "unusedMcpServers": {}}`), 0644))

	assert.Eventually(t, func() bool {
		return logged.FilterLevelExact(zap.WarnLevel).Len() > 0
	}, 2*time.Second, 10*time.Millisecond, "expected a warning about the external edit")
}

func TestWatcher_ReportsEditOnRelativePath(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	core, logged := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	// fsnotify reports "claude_desktop_config.json" for a "." watch; the
	// comparison must still match the "./"-prefixed configured path.
	store := NewStore("./claude_desktop_config.json", logger)

	watcher, err := NewWatcher(store, logger)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	require.NoError(t, os.WriteFile("claude_desktop_config.json",
		[]byte(`{"mcpServers": {}, "unusedMcpServers": {}}`), 0644))

	assert.Eventually(t, func() bool {
		return logged.FilterLevelExact(zap.WarnLevel).Len() > 0
	}, 2*time.Second, 10*time.Millisecond, "expected a warning about the external edit")
}

func TestWatcher_IgnoresOwnSave(t *testing.T) {
	core, logged := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	store := NewStore(newTestStore(t).Path(), logger)

	watcher, err := NewWatcher(store, logger)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	require.NoError(t, store.Save(NewDocument()))

	// The save event must be consumed silently; give the loop time to see it.
	assert.Eventually(t, func() bool {
		return logged.FilterMessage("skipping file event (programmatic change)").Len() > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, logged.FilterLevelExact(zap.WarnLevel).Len())
}
