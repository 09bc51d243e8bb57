// Package history records every configuration load and keeps the log
// bounded.
//
// A load is one all-or-nothing parse run over the configured documents,
// whether from the CLI or from a watch-triggered reload. Records live in a
// Store (in-memory or SQLite) and a Pruner deletes them by age or count on a
// cron schedule.
package history

import (
	"context"
	"time"
)

// Status is the outcome of a load.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Trigger says what started a load.
type Trigger string

const (
	TriggerLoad   Trigger = "load"
	TriggerReload Trigger = "reload"
	TriggerWatch  Trigger = "watch"
)

// Record is one load.
type Record struct {
	ID        string         `json:"id"`
	RunID     string         `json:"run_id"`
	Trigger   Trigger        `json:"trigger"`
	Version   string         `json:"version,omitempty"`
	Documents []string       `json:"documents"`
	Counts    map[string]int `json:"counts,omitempty"`
	Status    Status         `json:"status"`
	ErrorType string         `json:"error_type,omitempty"`
	Error     string         `json:"error,omitempty"`
	Duration  time.Duration  `json:"duration"`
	Time      time.Time      `json:"time"`
}

// Query filters records. Results are ordered newest first.
type Query struct {
	Status Status
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

func (q *Query) matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	if !q.Since.IsZero() && r.Time.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && !r.Time.Before(q.Until) {
		return false
	}
	return true
}

// Store persists load records. Implementations are safe for concurrent use.
type Store interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query returns matching records, newest first.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records older than t.
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)

	// DeleteOldest removes all but the newest keep records.
	DeleteOldest(ctx context.Context, keep int64) (int64, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
