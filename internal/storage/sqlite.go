package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/teletext/internal/db"
)

// SQLiteKV implements KV over the kv table.
type SQLiteKV struct {
	db db.DBTX
}

// NewSQLiteKV creates a new SQLiteKV.
func NewSQLiteKV(conn db.DBTX) *SQLiteKV {
	return &SQLiteKV{db: conn}
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("scanning kv %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing kv %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting kv %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT key FROM kv WHERE key >= ? AND key < ? ORDER BY key`
	rows, err := s.db.QueryContext(ctx, query, prefix, prefixUpperBound(prefix))
	if err != nil {
		return nil, fmt.Errorf("listing kv keys %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning kv key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kv keys: %w", err)
	}
	return keys, nil
}

func (s *SQLiteKV) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	query := `DELETE FROM kv WHERE key >= ? AND key < ?`
	res, err := s.db.ExecContext(ctx, query, prefix, prefixUpperBound(prefix))
	if err != nil {
		return 0, fmt.Errorf("deleting kv prefix %q: %w", prefix, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted kv rows: %w", err)
	}
	return int(n), nil
}

// prefixUpperBound returns the smallest string greater than every string
// starting with prefix, for half-open range scans.
func prefixUpperBound(prefix string) string {
	return prefix + "￿"
}

var _ KV = (*SQLiteKV)(nil)
