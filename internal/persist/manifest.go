// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package persist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/clickscope/internal/models"
)

// manifestKeyPrefix namespaces artifact entries in BadgerDB.
const manifestKeyPrefix = "artifact:"

// Manifest records which backend wrote each artifact.
type Manifest interface {
	Record(ctx context.Context, rec models.ArtifactRecord) error

	// Lookup returns nil, nil when name has never been recorded.
	Lookup(ctx context.Context, name string) (*models.ArtifactRecord, error)

	// List returns every record ordered by name.
	List(ctx context.Context) ([]models.ArtifactRecord, error)

	Clear(ctx context.Context) error
	Close() error
}

// BadgerManifest persists the manifest in BadgerDB so it survives restarts
// alongside the cached artifacts.
type BadgerManifest struct {
	db *badger.DB
}

// OpenBadgerManifest opens (or creates) a manifest database at dir.
func OpenBadgerManifest(dir string) (*BadgerManifest, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for manifest: %w", err)
	}
	return &BadgerManifest{db: db}, nil
}

// NewBadgerManifest wraps an existing BadgerDB instance.
func NewBadgerManifest(db *badger.DB) *BadgerManifest {
	return &BadgerManifest{db: db}
}

func (m *BadgerManifest) Record(_ context.Context, rec models.ArtifactRecord) error {
	if rec.Name == "" {
		return errors.New("artifact name cannot be empty")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal artifact record: %w", err)
	}

	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(manifestKeyPrefix+rec.Name), data)
	})
}

func (m *BadgerManifest) Lookup(_ context.Context, name string) (*models.ArtifactRecord, error) {
	var rec *models.ArtifactRecord

	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(manifestKeyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec = &models.ArtifactRecord{}
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("lookup artifact %s: %w", name, err)
	}
	return rec, nil
}

func (m *BadgerManifest) List(_ context.Context) ([]models.ArtifactRecord, error) {
	var out []models.ArtifactRecord

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(manifestKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec models.ArtifactRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return out, nil
}

// Clear removes every artifact entry.
func (m *BadgerManifest) Clear(_ context.Context) error {
	return m.db.DropPrefix([]byte(manifestKeyPrefix))
}

func (m *BadgerManifest) Close() error {
	return m.db.Close()
}

// InMemoryManifest keeps the manifest for the lifetime of the process.
type InMemoryManifest struct {
	mu      sync.RWMutex
	records map[string]models.ArtifactRecord
}

func NewInMemoryManifest() *InMemoryManifest {
	return &InMemoryManifest{records: make(map[string]models.ArtifactRecord)}
}

func (m *InMemoryManifest) Record(_ context.Context, rec models.ArtifactRecord) error {
	if rec.Name == "" {
		return errors.New("artifact name cannot be empty")
	}
	m.mu.Lock()
	m.records[rec.Name] = rec
	m.mu.Unlock()
	return nil
}

func (m *InMemoryManifest) Lookup(_ context.Context, name string) (*models.ArtifactRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[name]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *InMemoryManifest) List(_ context.Context) ([]models.ArtifactRecord, error) {
	m.mu.RLock()
	out := make([]models.ArtifactRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *InMemoryManifest) Clear(_ context.Context) error {
	m.mu.Lock()
	m.records = make(map[string]models.ArtifactRecord)
	m.mu.Unlock()
	return nil
}

func (m *InMemoryManifest) Close() error {
	return nil
}
