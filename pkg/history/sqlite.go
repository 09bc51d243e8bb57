package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"mercator-hq/facesconfig/pkg/config"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS loads (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    trigger TEXT NOT NULL,
    version TEXT,
    documents TEXT NOT NULL,
    counts TEXT,
    status TEXT NOT NULL,
    error_type TEXT,
    error TEXT,
    duration_ns INTEGER NOT NULL,
    recorded_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_loads_recorded_at ON loads(recorded_at);
CREATE INDEX IF NOT EXISTS idx_loads_status ON loads(status);
`

const insertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// SQLiteStore keeps records in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	config *config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at cfg.Path and
// applies the schema.
func NewSQLiteStore(cfg *config.SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, newStorageError("sqlite", "open", fmt.Errorf("database path is required"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "history.sqlite")

	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, newStorageError("sqlite", "mkdir", err)
			}
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, newStorageError("sqlite", "open", err)
	}
	maxOpen := cfg.MaxOpenConns
	if cfg.Path == ":memory:" || maxOpen <= 0 {
		// Every connection to :memory: is a separate database.
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)

	s := &SQLiteStore{db: db, config: cfg, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite history store initialized",
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
		"max_open_conns", maxOpen,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode && s.config.Path != ":memory:" {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return newStorageError("sqlite", "enable_wal", err)
		}
	}
	if s.config.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())
		if _, err := s.db.Exec(pragma); err != nil {
			return newStorageError("sqlite", "set_busy_timeout", err)
		}
	}
	if _, err := s.db.Exec(schema); err != nil {
		return newStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, schemaVersion); err != nil {
		return newStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;").Scan(&version)
	if err != nil {
		return newStorageError("sqlite", "get_schema_version", err)
	}
	if version != schemaVersion {
		return newStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", schemaVersion, version))
	}
	return nil
}

func (s *SQLiteStore) Store(ctx context.Context, record *Record) error {
	documents, err := json.Marshal(record.Documents)
	if err != nil {
		return newStorageError("sqlite", "store", err)
	}
	var counts any
	if record.Counts != nil {
		b, err := json.Marshal(record.Counts)
		if err != nil {
			return newStorageError("sqlite", "store", err)
		}
		counts = string(b)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO loads (
			id, run_id, trigger, version, documents, counts,
			status, error_type, error, duration_ns, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.RunID, string(record.Trigger), nullString(record.Version),
		string(documents), counts,
		string(record.Status), nullString(record.ErrorType), nullString(record.Error),
		int64(record.Duration), record.Time.UnixNano(),
	)
	if err != nil {
		return newStorageError("sqlite", "store", err)
	}
	return nil
}

func (s *SQLiteStore) Query(ctx context.Context, query *Query) ([]*Record, error) {
	var where []string
	var args []any
	if query != nil {
		if query.Status != "" {
			where = append(where, "status = ?")
			args = append(args, string(query.Status))
		}
		if !query.Since.IsZero() {
			where = append(where, "recorded_at >= ?")
			args = append(args, query.Since.UnixNano())
		}
		if !query.Until.IsZero() {
			where = append(where, "recorded_at < ?")
			args = append(args, query.Until.UnixNano())
		}
	}

	var b strings.Builder
	b.WriteString(`SELECT id, run_id, trigger, version, documents, counts,
		status, error_type, error, duration_ns, recorded_at FROM loads`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY recorded_at DESC, rowid DESC")
	if query != nil && (query.Limit > 0 || query.Offset > 0) {
		limit := query.Limit
		if limit <= 0 {
			limit = -1
		}
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, newStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	var results []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, newStorageError("sqlite", "scan", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("sqlite", "query", err)
	}
	return results, nil
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	var (
		r                             Record
		trigger, status, documents    string
		version, counts, errType, msg sql.NullString
		durationNs, recordedAt        int64
	)
	if err := rows.Scan(&r.ID, &r.RunID, &trigger, &version, &documents, &counts,
		&status, &errType, &msg, &durationNs, &recordedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(documents), &r.Documents); err != nil {
		return nil, err
	}
	if counts.Valid {
		if err := json.Unmarshal([]byte(counts.String), &r.Counts); err != nil {
			return nil, err
		}
	}
	r.Trigger = Trigger(trigger)
	r.Status = Status(status)
	r.Version = version.String
	r.ErrorType = errType.String
	r.Error = msg.String
	r.Duration = time.Duration(durationNs)
	r.Time = time.Unix(0, recordedAt)
	return &r, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM loads").Scan(&n); err != nil {
		return 0, newStorageError("sqlite", "count", err)
	}
	return n, nil
}

func (s *SQLiteStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM loads WHERE recorded_at < ?", t.UnixNano())
	if err != nil {
		return 0, newStorageError("sqlite", "delete_before", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM loads WHERE id NOT IN (
			SELECT id FROM loads ORDER BY recorded_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, newStorageError("sqlite", "delete_oldest", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return newStorageError("sqlite", "ping", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
