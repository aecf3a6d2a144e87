package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conecta-saber/saber-cli/pkg/core/model"
)

func testSession() Session {
	return Session{
		Token: "abc123",
		User: model.User{
			Name: "Maria Silva",
			Role: model.RoleLearner,
		},
	}
}

func TestStore_SaveAndCurrent(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(testSession()))

	got, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc123", got.Token)
	assert.Equal(t, "Maria Silva", got.User.Name)
	assert.Equal(t, model.RoleLearner, got.User.Role)
}

func TestStore_CurrentWithoutSession(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	got, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewStoreAt(path)
	require.NoError(t, first.Save(testSession()))

	// A fresh store over the same file simulates an app restart.
	second := NewStoreAt(path)
	got, err := second.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc123", got.Token)
}

func TestStore_ClearLeavesFreshState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStoreAt(path)

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())

	got, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, got)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-clear store is fine.
	assert.NoError(t, store.Clear())
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Save(Session{
		Token: "newtoken",
		User:  model.User{Name: "João", Role: model.RoleVolunteer},
	}))

	got, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "newtoken", got.Token)
	assert.Equal(t, model.RoleVolunteer, got.User.Role)
}

func TestStore_TokenSampledFresh(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(testSession()))

	tok, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok.AccessToken)

	// Logout concurrent with in-flight work must not leak the old token
	// into a later call: the next Token() sees the cleared store.
	require.NoError(t, store.Clear())

	tok, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, tok.AccessToken)
}

func TestStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStoreAt(path)
	require.NoError(t, store.Save(testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
