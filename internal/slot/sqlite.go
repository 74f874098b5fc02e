package slot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Option configures a SQLiteSlots.
type Option func(*SQLiteSlots)

// WithQuota rejects values larger than n bytes. Zero disables the check.
func WithQuota(n int) Option {
	return func(s *SQLiteSlots) { s.quota = n }
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLiteSlots) { s.logger = nopIfNil(l) }
}

// SQLiteSlots implements Slots using SQLite.
type SQLiteSlots struct {
	db     *sql.DB
	path   string
	quota  int
	logger *zap.Logger
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string, opts ...Option) (*SQLiteSlots, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteSlots{db: db, path: dbPath, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteSlots) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS slots (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

// Path returns the database file path.
func (s *SQLiteSlots) Path() string { return s.path }

// Logger returns the logger used for swallowed failures.
func (s *SQLiteSlots) Logger() *zap.Logger { return s.logger }

func (s *SQLiteSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLiteSlots) Put(ctx context.Context, key string, value []byte) error {
	if s.quota > 0 && len(value) > s.quota {
		return fmt.Errorf("put slot %s (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now)
	if err != nil {
		return fmt.Errorf("put slot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteSlots) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key)
	return err
}

func (s *SQLiteSlots) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM slots ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Size returns the number of bytes stored in key, or 0 if absent.
func (s *SQLiteSlots) Size(ctx context.Context, key string) int {
	var n int
	s.db.QueryRowContext(ctx, `SELECT LENGTH(value) FROM slots WHERE key = ?`, key).Scan(&n)
	return n
}

func (s *SQLiteSlots) Close() error {
	return s.db.Close()
}
