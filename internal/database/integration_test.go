package database

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test_integration.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestMigrationsCreateKVStore checks that the embedded migrations build the schema
func TestMigrationsCreateKVStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	for _, table := range []string{"migrations", "kv_store"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Running twice must not re-apply anything
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 recorded migration, got %d", count)
	}
}

// TestUpsertKV tests that the dialect upsert replaces existing values
func TestUpsertKV(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	for _, value := range []string{`{"a":1}`, `{"a":2}`} {
		if _, err := db.ExecContext(ctx, db.Dialect.UpsertKVQuery(), "gugudan.test", value); err != nil {
			t.Fatalf("upsert %s failed: %v", value, err)
		}
	}

	var got string
	if err := db.QueryRowContext(ctx, "SELECT item_value FROM kv_store WHERE item_key = ?", "gugudan.test").Scan(&got); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if got != `{"a":2}` {
		t.Errorf("item_value = %s, want {\"a\":2}", got)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if _, err := tx.ExecContext(ctx, tx.GetDialect().UpsertKVQuery(), "rolled.back", "1"); err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store WHERE item_key = ?", "rolled.back").Scan(&count); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows after rollback, got %d", count)
	}
}
