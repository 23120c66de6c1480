package itemstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/metrics"
)

// itemHeader is the fixed column order of the persisted item file.
var itemHeader = []string{"item_name", "item_id", "emoji", "category", "icon_url"}

// Directory is the remote item-directory collaborator. Both calls
// return the first result or nil when nothing matched; transport and
// malformed-result failures are absorbed behind the nil return by the
// implementation, so a non-nil error here means the call itself could
// not be made.
type Directory interface {
	SearchByName(ctx context.Context, name string) (*domain.Item, error)
	FetchByID(ctx context.Context, id int) (*domain.Item, error)
}

// Store is the authoritative, queryable cache of item records with
// transparent enrichment from the remote directory and durable
// write-through persistence to a flat CSV file.
//
// The in-memory map and the backing file are shared mutable state:
// writes are serialized behind a mutex, reads may run concurrently
// with each other but never with an in-flight write.
type Store struct {
	mu        sync.RWMutex
	path      string
	items     map[int]domain.Item
	order     []int // insertion order, preserved across rewrites
	directory Directory
}

// New opens the item store at path, creating an empty file with a
// header row if none exists, and loads all records into memory.
// The persisted file is the sole source of truth across restarts.
func New(path string, directory Directory) (*Store, error) {
	s := &Store{
		path:      path,
		items:     make(map[int]domain.Item),
		directory: directory,
	}

	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of cached items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Cached returns the cached item for id without consulting the remote
// directory. Read-only callers use this to avoid triggering enrichment.
func (s *Store) Cached(id int) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// LookupByID returns the cached item, or fetches it from the remote
// directory on a miss, upserting the result. A remote failure or empty
// result is a normal "unknown item" outcome and returns (nil, nil);
// only persistence failures surface as errors.
func (s *Store) LookupByID(ctx context.Context, id int) (*domain.Item, error) {
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()
	if ok {
		metrics.ItemLookups.WithLabelValues(metrics.LookupByID, metrics.OutcomeHit).Inc()
		return &item, nil
	}
	return s.enrich(ctx, metrics.LookupByID, func() (*domain.Item, error) {
		return s.directory.FetchByID(ctx, id)
	})
}

// LookupByName returns the item whose name matches exactly
// (case-insensitive), falling back to the remote directory's name
// search with the same enrichment semantics as LookupByID.
func (s *Store) LookupByName(ctx context.Context, name string) (*domain.Item, error) {
	s.mu.RLock()
	for _, id := range s.order {
		if strings.EqualFold(s.items[id].Name, name) {
			item := s.items[id]
			s.mu.RUnlock()
			metrics.ItemLookups.WithLabelValues(metrics.LookupByName, metrics.OutcomeHit).Inc()
			return &item, nil
		}
	}
	s.mu.RUnlock()
	return s.enrich(ctx, metrics.LookupByName, func() (*domain.Item, error) {
		return s.directory.SearchByName(ctx, name)
	})
}

// enrich resolves a cache miss through the remote directory and writes
// the result through the store. Remote misses are absorbed; only
// persistence errors propagate.
func (s *Store) enrich(ctx context.Context, kind string, fetch func() (*domain.Item, error)) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	item, err := fetch()
	if err != nil {
		log.Warn("Remote item directory call failed", "error", err)
		metrics.ItemLookups.WithLabelValues(kind, metrics.OutcomeMiss).Inc()
		return nil, nil
	}
	if item == nil {
		metrics.ItemLookups.WithLabelValues(kind, metrics.OutcomeMiss).Inc()
		return nil, nil
	}

	if err := s.Upsert(*item); err != nil {
		return nil, err
	}
	metrics.ItemLookups.WithLabelValues(kind, metrics.OutcomeRemote).Inc()
	return item, nil
}

// Upsert writes an item through to the persisted file. A brand-new id
// appends a single record (O(1) I/O); an existing id with changed
// fields rewrites the whole file; an unchanged item performs no I/O.
func (s *Store) Upsert(item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[item.ID]
	if ok {
		if existing.Equal(item) {
			return nil
		}
		s.items[item.ID] = item
		if err := s.rewriteLocked(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
		}
		metrics.StoreWrites.WithLabelValues(metrics.WriteRewrite).Inc()
		return nil
	}

	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	if err := s.appendLocked(item); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	metrics.StoreWrites.WithLabelValues(metrics.WriteAppend).Inc()
	return nil
}

// ensureFile creates the backing file with a header row if absent.
func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat item file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create item file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(itemHeader); err != nil {
		return fmt.Errorf("failed to write item file header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// load reads every record from the backing file into memory.
func (s *Store) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open item file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read item file: %w", err)
	}

	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) < len(itemHeader) {
			continue
		}
		id, err := strconv.Atoi(rec[1])
		if err != nil {
			continue
		}
		item := domain.Item{
			Name:     rec[0],
			ID:       id,
			Emoji:    rec[2],
			Category: rec[3],
			IconURL:  rec[4],
		}
		if _, ok := s.items[id]; !ok {
			s.order = append(s.order, id)
		}
		s.items[id] = item
	}
	return nil
}

// rewriteLocked rewrites the whole file from memory. Caller holds the
// write lock.
func (s *Store) rewriteLocked() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(itemHeader); err != nil {
		return err
	}
	for _, id := range s.order {
		if err := w.Write(record(s.items[id])); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// appendLocked appends one record without touching the rest of the
// file. Caller holds the write lock.
func (s *Store) appendLocked(item domain.Item) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(record(item)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func record(item domain.Item) []string {
	return []string{
		item.Name,
		strconv.Itoa(item.ID),
		item.Emoji,
		item.Category,
		item.IconURL,
	}
}
