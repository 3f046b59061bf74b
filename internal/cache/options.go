package cache

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultDirName is the directory created under os.TempDir() when no cache
// root is configured.
const DefaultDirName = "cache"

// Option customises a FileCache at construction time.
type Option func(*options)

type options struct {
	dir      string
	store    Store
	logger   *logrus.Logger
	recorder Recorder
}

// WithDir sets the cache root on the local filesystem.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithStore replaces the durable tier entirely; WithDir is ignored.
func WithStore(store Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger routes storage-fault diagnostics to logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder reports every operation outcome to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// DefaultDir returns <os.TempDir()>/cache.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), DefaultDirName)
}
