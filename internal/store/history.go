package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
)

// Operation names the front-end call that produced a record
type Operation string

const (
	OperationTokenize Operation = "tokenize"
	OperationParse    Operation = "parse"
)

// Record is one tokenize or parse request
type Record struct {
	ID          string    `json:"id"`
	Operation   Operation `json:"operation"`
	Source      string    `json:"source"`
	Canonical   string    `json:"canonical,omitempty"`
	TokenCount  int       `json:"token_count"`
	ErrorCount  int       `json:"error_count"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Failed reports whether the request produced diagnostics
func (r *Record) Failed() bool {
	return r.ErrorCount > 0
}

// Filter defines criteria for listing records
type Filter struct {
	Operation  Operation
	OnlyFailed bool
	Since      time.Time
	Limit      int
	Offset     int
}

// Statistics summarizes the stored history
type Statistics struct {
	Total       int64               `json:"total"`
	Failed      int64               `json:"failed"`
	ByOperation map[Operation]int64 `json:"by_operation"`
	LastEntry   time.Time           `json:"last_entry,omitempty"`
}

// HistoryStore defines the interface for parse history persistence
type HistoryStore interface {
	Record(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, filter Filter) ([]*Record, error)
	Statistics(ctx context.Context) (*Statistics, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteHistoryStore implements HistoryStore using SQLite. Timestamps are
// stored in UTC so that range queries compare correctly as text.
type SQLiteHistoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteHistoryStore opens or creates the history database
func NewSQLiteHistoryStore(cfg SQLiteConfig) (*SQLiteHistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "store.Open")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open database", "store.Open")
	}

	store := &SQLiteHistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "store.Open")
	}

	return store, nil
}

func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parses (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		source TEXT NOT NULL,
		canonical TEXT,
		token_count INTEGER NOT NULL DEFAULT 0,
		error_count INTEGER NOT NULL DEFAULT 0,
		diagnostics TEXT,
		request_id TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_parses_created_at ON parses(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_parses_operation ON parses(operation);
	CREATE INDEX IF NOT EXISTS idx_parses_error_count ON parses(error_count);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a record, assigning ID and timestamp when unset
func (s *SQLiteHistoryStore) Record(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(rec)

	var diagnosticsJSON []byte
	if len(rec.Diagnostics) > 0 {
		diagnosticsJSON, _ = json.Marshal(rec.Diagnostics)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parses (id, operation, source, canonical, token_count, error_count, diagnostics, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Operation, rec.Source, rec.Canonical, rec.TokenCount, rec.ErrorCount,
		diagnosticsJSON, rec.RequestID, rec.CreatedAt.UTC())
	if err != nil {
		return dbError(err, "failed to insert record", "store.Record")
	}

	return nil
}

// Get retrieves a record by ID
func (s *SQLiteHistoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, operation, source, canonical, token_count, error_count, diagnostics, request_id, created_at
		FROM parses WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mdwerror.Newf("record not found: %s", id).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("store.Get")
	}
	if err != nil {
		return nil, dbError(err, "failed to get record", "store.Get")
	}
	return rec, nil
}

// List retrieves records newest first
func (s *SQLiteHistoryStore) List(ctx context.Context, filter Filter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, operation, source, canonical, token_count, error_count, diagnostics, request_id, created_at
		FROM parses WHERE 1=1`
	var args []interface{}

	if filter.Operation != "" {
		query += " AND operation = ?"
		args = append(args, filter.Operation)
	}
	if filter.OnlyFailed {
		query += " AND error_count > 0"
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	// SQLite only accepts OFFSET after LIMIT; -1 means no limit
	switch {
	case filter.Limit > 0:
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query records", "store.List")
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan record", "store.List")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to iterate records", "store.List")
	}

	return records, nil
}

// Statistics returns counts over the stored history
func (s *SQLiteHistoryStore) Statistics(ctx context.Context) (*Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Statistics{ByOperation: make(map[Operation]int64)}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN error_count > 0 THEN 1 ELSE 0 END), 0) FROM parses`,
	).Scan(&stats.Total, &stats.Failed); err != nil {
		return nil, dbError(err, "failed to count records", "store.Statistics")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT operation, COUNT(*) FROM parses GROUP BY operation`)
	if err != nil {
		return nil, dbError(err, "failed to group records", "store.Statistics")
	}
	defer rows.Close()
	for rows.Next() {
		var op Operation
		var count int64
		if err := rows.Scan(&op, &count); err != nil {
			return nil, dbError(err, "failed to scan counts", "store.Statistics")
		}
		stats.ByOperation[op] = count
	}

	// MAX() loses the column type, so read the newest row instead
	var last time.Time
	err = s.db.QueryRowContext(ctx, `SELECT created_at FROM parses ORDER BY created_at DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, dbError(err, "failed to read last entry", "store.Statistics")
	}
	stats.LastEntry = last

	return stats, nil
}

// Prune removes records older than the specified duration
func (s *SQLiteHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM parses WHERE created_at < ?`, time.Now().Add(-olderThan).UTC())
	if err != nil {
		return 0, dbError(err, "failed to prune records", "store.Prune")
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var canonical, diagnosticsJSON, requestID sql.NullString

	if err := row.Scan(&rec.ID, &rec.Operation, &rec.Source, &canonical, &rec.TokenCount,
		&rec.ErrorCount, &diagnosticsJSON, &requestID, &rec.CreatedAt); err != nil {
		return nil, err
	}

	rec.Canonical = canonical.String
	rec.RequestID = requestID.String
	if diagnosticsJSON.Valid && diagnosticsJSON.String != "" {
		if err := json.Unmarshal([]byte(diagnosticsJSON.String), &rec.Diagnostics); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

func dbError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(operation)
}
