package assets

// Loader turns one file into its in-memory asset. Loaders are registered
// per file extension; the manager re-runs them when the file changes on
// disk.
type Loader interface {
	Load(path string) (interface{}, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(path string) (interface{}, error)

func (f LoaderFunc) Load(path string) (interface{}, error) {
	return f(path)
}

// ReloadFunc is notified with the freshly loaded asset when a watched
// file changes.
type ReloadFunc func(path string, asset interface{})
