// Package assets watches the asset directory and routes files to
// extension-keyed loaders. Subscribers get called back with the reloaded
// asset when a watched file is written, which is how stylesheet hot
// reload reaches live UI sessions.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/pixelui/engine/core"
)

// AssetInfo is the manager's record of one discovered file.
type AssetInfo struct {
	Path       string
	Extension  string
	LastLoaded time.Time
}

// AssetManager indexes the asset tree, loads files through registered
// loaders and re-runs them on file writes.
type AssetManager struct {
	assets      map[string]AssetInfo
	loaders     map[string]Loader
	subscribers map[string][]ReloadFunc

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

// NewAssetManager creates a manager with an idle file watcher.
func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &AssetManager{
		assets:      make(map[string]AssetInfo),
		loaders:     make(map[string]Loader),
		subscribers: make(map[string][]ReloadFunc),
		fsnotify:    fsWatch,
		done:        make(chan struct{}),
	}, nil
}

// Initialize indexes assetsDir recursively and starts the watch loop.
// Loaders should be registered before calling this so reloads during
// startup already resolve.
func (am *AssetManager) Initialize(assetsDir string) error {
	go am.start()
	return am.watchRecursive(assetsDir)
}

// RegisterLoader routes files with the given extension (".pwss") through
// loader. Registering an extension twice replaces the loader.
func (am *AssetManager) RegisterLoader(extension string, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[strings.ToLower(extension)] = loader
}

// Subscribe registers fn to run whenever a file with the extension is
// loaded because of a disk change.
func (am *AssetManager) Subscribe(extension string, fn ReloadFunc) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	extension = strings.ToLower(extension)
	am.subscribers[extension] = append(am.subscribers[extension], fn)
}

// LoadAsset loads one file through its extension's loader.
func (am *AssetManager) LoadAsset(path string) (interface{}, error) {
	extension := strings.ToLower(filepath.Ext(path))

	am.mutex.RLock()
	loader, ok := am.loaders[extension]
	am.mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no loader registered for %q files", extension)
	}

	asset, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Extension: extension, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return asset, nil
}

// Close stops the watch loop and the underlying watcher.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	am.isClosed = true
	close(am.done)
	return nil
}

func (am *AssetManager) start() {
	for {
		select {
		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("assets: cannot watch %s: %v", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			core.LogError("assets: watcher: %v", e)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds every directory under path to the watch list and
// indexes the files it finds.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.indexFile(walkPath)
		return nil
	})
}

// indexFile records a file the watcher discovered without loading it.
func (am *AssetManager) indexFile(path string) {
	extension := strings.ToLower(filepath.Ext(path))
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if _, ok := am.loaders[extension]; !ok {
		return
	}
	if _, ok := am.assets[path]; !ok {
		am.assets[path] = AssetInfo{Path: path, Extension: extension}
	}
}

// handleFileEvent reloads a created or written file and notifies the
// extension's subscribers. Files without a loader are ignored.
func (am *AssetManager) handleFileEvent(path string) {
	extension := strings.ToLower(filepath.Ext(path))

	am.mutex.RLock()
	_, ok := am.loaders[extension]
	subscribers := am.subscribers[extension]
	am.mutex.RUnlock()
	if !ok {
		return
	}

	asset, err := am.LoadAsset(path)
	if err != nil {
		core.LogWarn("assets: reload of %s failed: %v", path, err)
		return
	}
	core.LogInfo("assets: reloaded %s", path)
	for _, fn := range subscribers {
		fn(path, asset)
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, path)
}
