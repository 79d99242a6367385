// Package storage persists encoded run reports in a Pebble key-value store.
package storage

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
)

const (
	// defaultSyncInterval is the default interval between WAL syncs.
	defaultSyncInterval = 100 * time.Millisecond
)

// Key prefixes separating reports from sweep metadata.
var (
	prefixReport = []byte("r:")
	prefixMeta   = []byte("m:")
)

// ErrEmptyKey is returned when a run key is empty.
var ErrEmptyKey = errors.New("empty archive key")

// Entry is one archived report.
type Entry struct {
	Key    string // Key is the run key, without prefix
	Report []byte // Report is the encoded report
}

// Archive stores encoded reports keyed by run key.
// Writes are non-blocking (NoSync) and a background goroutine
// periodically syncs the WAL to disk. Safe for concurrent use.
type Archive struct {
	db       *pebble.DB    // db is the underlying Pebble database
	stopSync chan struct{} // stopSync signals the sync goroutine to stop
	wg       sync.WaitGroup
}

// Open opens or creates an archive at path.
func Open(path string) (*Archive, error) {
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(16 << 20), // 16 MB cache
		MemTableSize:                8 << 20,                   // 8 MB memtable
		MemTableStopWritesThreshold: 2,
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		db:       db,
		stopSync: make(chan struct{}),
	}

	a.startSyncLoop()

	return a, nil
}

// Put stores report under key, replacing any previous one.
func (a *Archive) Put(key string, report []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return a.db.Set(reportKey(key), report, pebble.NoSync)
}

// PutBatch atomically stores several reports.
func (a *Archive) PutBatch(entries []Entry) error {
	batch := a.db.NewBatch()
	defer batch.Close()

	for _, e := range entries {
		if e.Key == "" {
			return ErrEmptyKey
		}
		if err := batch.Set(reportKey(e.Key), e.Report, nil); err != nil {
			return err
		}
	}

	return batch.Commit(pebble.NoSync)
}

// Get returns the report stored under key, or nil if there is none.
func (a *Archive) Get(key string) ([]byte, error) {
	return a.get(reportKey(key))
}

// Has reports whether a report exists under key.
func (a *Archive) Has(key string) (bool, error) {
	v, err := a.Get(key)
	return v != nil, err
}

// Delete removes the report stored under key.
func (a *Archive) Delete(key string) error {
	return a.db.Delete(reportKey(key), pebble.NoSync)
}

// Iterate calls fn for each report in key order.
// If fn returns an error, iteration stops and the error is returned.
// The report slice is only valid during the call.
func (a *Archive) Iterate(fn func(key string, report []byte) error) error {
	return a.iteratePrefix(prefixReport, func(k, v []byte) error {
		return fn(string(k[len(prefixReport):]), v)
	})
}

// IterateKeyPrefix is Iterate restricted to run keys starting with prefix.
func (a *Archive) IterateKeyPrefix(prefix string, fn func(key string, report []byte) error) error {
	full := reportKey(prefix)

	return a.iteratePrefix(full, func(k, v []byte) error {
		return fn(string(k[len(prefixReport):]), v)
	})
}

// Keys returns every run key in order.
func (a *Archive) Keys() ([]string, error) {
	var keys []string

	err := a.Iterate(func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	})

	return keys, err
}

// PutMeta stores sweep metadata under name.
func (a *Archive) PutMeta(name string, value []byte) error {
	if name == "" {
		return ErrEmptyKey
	}
	return a.db.Set(metaKey(name), value, pebble.NoSync)
}

// GetMeta returns metadata stored under name, or nil.
func (a *Archive) GetMeta(name string) ([]byte, error) {
	return a.get(metaKey(name))
}

// Close stops the sync goroutine and closes the database.
// It performs a final sync before closing.
func (a *Archive) Close() error {
	close(a.stopSync)
	a.wg.Wait()

	if err := a.sync(); err != nil {
		return err
	}

	return a.db.Close()
}

func (a *Archive) get(key []byte) ([]byte, error) {
	value, closer, err := a.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// Copy the value since it's invalid after closer.Close()
	result := make([]byte, len(value))
	copy(result, value)

	return result, nil
}

// iteratePrefix calls fn for each key-value pair with the given prefix.
func (a *Archive) iteratePrefix(prefix []byte, fn func(key, value []byte) error) error {
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		value, err := iter.ValueAndErr()
		if err != nil {
			return err
		}

		if err := fn(iter.Key(), value); err != nil {
			return err
		}
	}

	return iter.Error()
}

// prefixUpperBound computes the exclusive upper bound for a prefix scan.
// Increments the last byte; returns nil if prefix is all 0xFF (full range).
func prefixUpperBound(prefix []byte) []byte {
	upper := make([]byte, len(prefix))
	copy(upper, prefix)

	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}

	return nil
}

// startSyncLoop starts the background goroutine that periodically syncs the WAL.
func (a *Archive) startSyncLoop() {
	a.wg.Add(1)

	go func() {
		defer a.wg.Done()

		ticker := time.NewTicker(defaultSyncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_ = a.sync()
			case <-a.stopSync:
				return
			}
		}
	}()
}

// sync forces a WAL sync to disk.
func (a *Archive) sync() error {
	return a.db.LogData(nil, pebble.Sync)
}

func reportKey(key string) []byte {
	return []byte(string(prefixReport) + key)
}

func metaKey(name string) []byte {
	return []byte(string(prefixMeta) + strings.TrimSpace(name))
}
