package cache

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/syframework/cache/internal/logging"
)

// FileCache is a two-tier cache: an in-process map in front of one record
// file per key.
//
// Set updates the map before the record is persisted and never rolls it
// back, so a Set that returns false still serves the new value from memory
// for the rest of the process lifetime. Values written by other processes
// are only seen for keys this instance has not cached in memory yet.
type FileCache[V any] struct {
	store    Store
	logger   *logrus.Logger
	recorder Recorder

	mu   sync.RWMutex
	pool map[string]V
	// gen changes whenever Set, Delete or Clear touch the pool. A disk read
	// only warms the pool if gen is unchanged since the read started.
	gen uint64
}

// New builds a FileCache rooted at DefaultDir() unless WithDir or WithStore
// say otherwise. Nothing is created on disk until the first Set.
func New[V any](opts ...Option) (*FileCache[V], error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		dir := o.dir
		if dir == "" {
			dir = DefaultDir()
		}
		var err error
		store, err = NewLocalStore(dir)
		if err != nil {
			return nil, err
		}
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Discard()
	}
	recorder := o.recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &FileCache[V]{
		store:    store,
		logger:   logger,
		recorder: recorder,
		pool:     make(map[string]V),
	}, nil
}

// Root returns the directory backing the durable tier.
func (c *FileCache[V]) Root() string {
	return c.store.Root()
}

// Get returns the value for key, or def on a miss. Records that cannot be
// decoded count as misses.
func (c *FileCache[V]) Get(key string, def V) (V, error) {
	if err := ValidateKey(key); err != nil {
		return def, err
	}

	c.mu.RLock()
	value, ok := c.pool[key]
	gen := c.gen
	c.mu.RUnlock()
	if ok {
		c.recorder.Record(OpGet, ResultHitMemory)
		return value, nil
	}

	data, err := c.store.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.WithFields(logging.CacheFields("cache_read", key)).WithError(err).Warn("read cache record failed")
		}
		c.recorder.Record(OpGet, ResultMiss)
		return def, nil
	}

	value, ok = decodeRecord[V](data)
	if !ok {
		c.logger.WithFields(logging.CacheFields("cache_decode", key)).Debug("discarding unreadable cache record")
		c.recorder.Record(OpGet, ResultMiss)
		return def, nil
	}

	c.mu.Lock()
	if current, ok := c.pool[key]; ok {
		value = current
	} else if c.gen == gen {
		c.pool[key] = value
	}
	c.mu.Unlock()

	c.recorder.Record(OpGet, ResultHitDisk)
	return value, nil
}

// Set stores value under key. Empty values (see IsEmpty) are refused and
// leave both tiers untouched. The result is true only when the record was
// written and renamed into place. ttl is accepted but never enforced.
func (c *FileCache[V]) Set(key string, value V, ttl time.Duration) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	if IsEmpty(value) {
		c.recorder.Record(OpSet, ResultRejected)
		return false, nil
	}

	c.mu.Lock()
	c.pool[key] = value
	c.gen++
	c.mu.Unlock()

	fields := logging.CacheFields("cache_write", key)
	data, err := encodeRecord(key, value)
	if err != nil {
		c.logger.WithFields(fields).WithError(err).Warn("encode cache record failed")
		c.recorder.Record(OpSet, ResultFailed)
		return false, nil
	}

	if err := c.store.Write(key, data); err != nil {
		c.logger.WithFields(fields).WithError(err).Warn("persist cache record failed")
		c.recorder.Record(OpSet, ResultFailed)
		return false, nil
	}

	c.recorder.Record(OpSet, ResultStored)
	return true, nil
}

// Delete drops key from memory and removes its path on disk. Deleting an
// absent key succeeds. If the path is a directory created by nested keys, the
// whole subtree is removed.
func (c *FileCache[V]) Delete(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	c.mu.Lock()
	delete(c.pool, key)
	c.gen++
	c.mu.Unlock()

	err := c.store.Remove(key)
	c.bump()
	if err != nil {
		c.logger.WithFields(logging.CacheFields("cache_delete", key)).WithError(err).Warn("remove cache record failed")
		c.recorder.Record(OpDelete, ResultFailed)
		return false, nil
	}
	c.recorder.Record(OpDelete, ResultOK)
	return true, nil
}

// Clear empties memory and removes the whole cache root.
func (c *FileCache[V]) Clear() bool {
	c.mu.Lock()
	c.pool = make(map[string]V)
	c.gen++
	c.mu.Unlock()

	err := c.store.Clear()
	c.bump()
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"action": "cache_clear",
			"root":   c.store.Root(),
		}).WithError(err).Warn("clear cache root failed")
		c.recorder.Record(OpClear, ResultFailed)
		return false
	}
	c.recorder.Record(OpClear, ResultOK)
	return true
}

// bump invalidates disk reads that started before a removal finished.
func (c *FileCache[V]) bump() {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
}

// Has reports whether key is in memory or has a record file. The file is not
// read, so a corrupt record still counts. The answer may be stale by the time
// the caller acts on it.
func (c *FileCache[V]) Has(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	c.mu.RLock()
	_, ok := c.pool[key]
	c.mu.RUnlock()
	if ok {
		c.recorder.Record(OpHas, ResultHitMemory)
		return true, nil
	}

	if c.store.Exists(key) {
		c.recorder.Record(OpHas, ResultHitDisk)
		return true, nil
	}
	c.recorder.Record(OpHas, ResultMiss)
	return false, nil
}

// GetMultiple returns one entry per key, def for misses. A nil slice is
// rejected; an invalid key aborts the call when it is reached.
func (c *FileCache[V]) GetMultiple(keys []string, def V) (map[string]V, error) {
	if err := validateKeys(keys); err != nil {
		return nil, err
	}

	result := make(map[string]V, len(keys))
	for _, key := range keys {
		value, err := c.Get(key, def)
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
	return result, nil
}

// SetMultiple sets every entry in key order and reports whether all of them
// succeeded. Entries before an invalid key stay applied.
func (c *FileCache[V]) SetMultiple(values map[string]V, ttl time.Duration) (bool, error) {
	if err := validateValues(values); err != nil {
		return false, err
	}

	success := true
	for _, key := range slices.Sorted(maps.Keys(values)) {
		ok, err := c.Set(key, values[key], ttl)
		if err != nil {
			return false, err
		}
		success = ok && success
	}
	return success, nil
}

// DeleteMultiple deletes every key and reports whether all removals
// succeeded. Keys before an invalid key stay deleted.
func (c *FileCache[V]) DeleteMultiple(keys []string) (bool, error) {
	if err := validateKeys(keys); err != nil {
		return false, err
	}

	success := true
	for _, key := range keys {
		ok, err := c.Delete(key)
		if err != nil {
			return false, err
		}
		success = ok && success
	}
	return success, nil
}
