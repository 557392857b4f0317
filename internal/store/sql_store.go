package store

import (
	"context"
	"database/sql"
	"fmt"

	"gugudan/internal/database"
)

// SQLStore keeps values in the kv_store table
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store over a migrated database
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT item_value FROM kv_store WHERE item_key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(ctx, s.db, key, value)
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE item_key = ?", key)
	return err
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT item_key FROM kv_store ORDER BY item_key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// SetAll writes every entry in one transaction, for backup restore
func (s *SQLStore) SetAll(ctx context.Context, entries map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for key, value := range entries {
		if err := upsert(ctx, tx, key, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func upsert(ctx context.Context, db database.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, db.GetDialect().UpsertKVQuery(), key, string(value))
	return err
}
