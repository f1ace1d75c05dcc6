package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	require.NoError(t, err)
	t.Cleanup(func() { am.Close() })
	return am
}

func TestLoadAssetRoutesByExtension(t *testing.T) {
	am := newManager(t)
	am.RegisterLoader(".txt", LoaderFunc(func(path string) (interface{}, error) {
		data, err := os.ReadFile(path)
		return string(data), err
	}))

	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	asset, err := am.LoadAsset(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", asset)
}

func TestLoadAssetUnknownExtension(t *testing.T) {
	am := newManager(t)
	_, err := am.LoadAsset("oops.dat")
	assert.Error(t, err)
}

func TestLoadAssetExtensionCaseInsensitive(t *testing.T) {
	am := newManager(t)
	am.RegisterLoader(".TXT", LoaderFunc(func(path string) (interface{}, error) {
		return "loaded", nil
	}))

	dir := t.TempDir()
	path := filepath.Join(dir, "NOTE.TXT")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	asset, err := am.LoadAsset(path)
	require.NoError(t, err)
	assert.Equal(t, "loaded", asset)
}

func TestHotReloadNotifiesSubscribers(t *testing.T) {
	am := newManager(t)
	am.RegisterLoader(".txt", LoaderFunc(func(path string) (interface{}, error) {
		data, err := os.ReadFile(path)
		return string(data), err
	}))

	reloaded := make(chan interface{}, 4)
	am.Subscribe(".txt", func(path string, asset interface{}) {
		reloaded <- asset
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	require.NoError(t, am.Initialize(dir))

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case asset := <-reloaded:
		assert.Equal(t, "v2", asset)
	case <-time.After(5 * time.Second):
		t.Fatal("write event never reached the subscriber")
	}
}

func TestHotReloadIgnoresUnregisteredFiles(t *testing.T) {
	am := newManager(t)
	am.RegisterLoader(".txt", LoaderFunc(func(path string) (interface{}, error) {
		return nil, nil
	}))

	notified := make(chan struct{}, 1)
	am.Subscribe(".txt", func(path string, asset interface{}) {
		notified <- struct{}{}
	})

	dir := t.TempDir()
	require.NoError(t, am.Initialize(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.bin"), []byte("x"), 0o644))

	select {
	case <-notified:
		t.Fatal("subscriber fired for an unregistered extension")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseTwice(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Close())
	assert.Error(t, am.Close())
}
