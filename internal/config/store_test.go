package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "claude_desktop_config.json"), zap.NewNop())
}

func TestStore_LoadAbsentFileBootstrapsEmpty(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Active)
	assert.Empty(t, doc.Inactive)
	assert.NotNil(t, doc.Active)
	assert.NotNil(t, doc.Inactive)

	// Loading never creates the file.
	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestStore_LoadInvalidJSONIsParseError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("not json {"), 0644))

	_, err := store.Load()
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, store.Path(), parseErr.Path)
}

func TestStore_LoadUnreadablePathIsIOError(t *testing.T) {
	tempDir := t.TempDir()
	// A directory at the config path is readable as a path but not as a file.
	path := filepath.Join(tempDir, "config.json")
	require.NoError(t, os.Mkdir(path, 0755))

	store := NewStore(path, zap.NewNop())
	_, err := store.Load()
	require.Error(t, err)

	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
}

func TestStore_LoadMissingKeysTreatedAsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(),
		[]byte(`{"mcpServers": {"weather": {"command": "uv", "args": []}}}`), 0644))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Active, 1)
	assert.NotNil(t, doc.Inactive)
	assert.Empty(t, doc.Inactive)
}

func TestStore_SaveWritesBothKeysEvenWhenEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(NewDocument()))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "mcpServers")
	assert.Contains(t, raw, "unusedMcpServers")
}

func TestStore_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Claude", "claude_desktop_config.json")
	store := NewStore(path, zap.NewNop())

	require.NoError(t, store.Save(NewDocument()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_SaveLeavesNoTempFile(t *testing.T) {
	store := newTestStore(t)
	doc := NewDocument()
	doc.Inactive["weather"] = ServerEntry{Command: "uv", Args: []string{"run", "weather.py"}}

	require.NoError(t, store.Save(doc))

	_, err := os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStore_SaveRejectsInvariantViolation(t *testing.T) {
	store := newTestStore(t)
	doc := NewDocument()
	doc.Active["weather"] = ServerEntry{Command: "uv"}
	doc.Inactive["weather"] = ServerEntry{Command: "uv"}

	err := store.Save(doc)
	require.Error(t, err)

	// Nothing was written.
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_RoundTripPreservesOpaqueDescriptorFields(t *testing.T) {
	store := newTestStore(t)
	content := `{
		"mcpServers": {
			"github": {
				"command": "npx",
				"args": ["-y", "server-github"],
				"env": {"GITHUB_TOKEN": "t"},
				"transport": "stdio"
			}
		},
		"unusedMcpServers": {}
	}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

	doc, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(doc))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, content, string(data))
}

func TestStore_RoundTripPreservesEmptyCommand(t *testing.T) {
	store := newTestStore(t)
	content := `{
		"mcpServers": {
			"placeholder": {"command": "", "args": ["x"]}
		},
		"unusedMcpServers": {}
	}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

	doc, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(doc))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, content, string(data))
}

func TestStore_SaveEncodeFailureIsNotIOError(t *testing.T) {
	store := newTestStore(t)
	doc := NewDocument()
	doc.Active["bad"] = ServerEntry{
		Command: "uv",
		Extra:   map[string]json.RawMessage{"env": json.RawMessage("{")},
	}

	err := store.Save(doc)
	require.Error(t, err)

	var ioErr *IOError
	assert.False(t, errors.As(err, &ioErr))
	assert.Contains(t, err.Error(), "encode config document")

	// Nothing was written.
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_ConsumeOwnWrite(t *testing.T) {
	store := newTestStore(t)

	assert.False(t, store.ConsumeOwnWrite())

	require.NoError(t, store.Save(NewDocument()))
	assert.True(t, store.ConsumeOwnWrite())
	assert.False(t, store.ConsumeOwnWrite())
}
