package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.records = append(s.records, cloneRecord(record))
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	var results []*Record
	for i := len(s.records) - 1; i >= 0; i-- {
		if query.matches(s.records[i]) {
			results = append(results, cloneRecord(s.records[i]))
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Time.After(results[j].Time)
	})

	if query != nil {
		results = paginate(results, query.Offset, query.Limit)
	}
	return results, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return int64(len(s.records)), nil
}

func (s *MemoryStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	kept := s.records[:0]
	var deleted int64
	for _, r := range s.records {
		if r.Time.Before(t) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

func (s *MemoryStore) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if keep < 0 {
		keep = 0
	}

	excess := int64(len(s.records)) - keep
	if excess <= 0 {
		return 0, nil
	}

	// Order oldest first by time, insertion order breaking ties.
	order := make([]int, len(s.records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.records[order[a]].Time.Before(s.records[order[b]].Time)
	})
	drop := make(map[int]bool, excess)
	for _, i := range order[:excess] {
		drop[i] = true
	}

	kept := make([]*Record, 0, keep)
	for i, r := range s.records {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return excess, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.records = nil
	return nil
}

func cloneRecord(r *Record) *Record {
	c := *r
	c.Documents = append([]string(nil), r.Documents...)
	if r.Counts != nil {
		c.Counts = make(map[string]int, len(r.Counts))
		for k, v := range r.Counts {
			c.Counts[k] = v
		}
	}
	return &c
}

func paginate(records []*Record, offset, limit int) []*Record {
	if offset > len(records) {
		return []*Record{}
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}
