package storage

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/petinova?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func TestMySQLState_UpsertAndLoad(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMySQLStateRepository(db)

	// Cleanup old test rows
	db.ExecContext(ctx, `DELETE FROM client_state WHERE session_key = 'test-session'`)

	first := []byte(`{"isAuthenticated":true}`)
	if err := repo.Save(ctx, "test-session", first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Second save must overwrite, not duplicate
	second := []byte(`{"isAuthenticated":false}`)
	if err := repo.Save(ctx, "test-session", second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	var count int
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM client_state WHERE session_key = 'test-session'`).Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row after upsert, got %d", count)
	}

	got, err := repo.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Errorf("expected %s, got %s", second, got)
	}

	db.ExecContext(ctx, `DELETE FROM client_state WHERE session_key = 'test-session'`)
}

func TestMySQLState_LoadMissingKey(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	repo := NewMySQLStateRepository(db)

	got, err := repo.Load(context.Background(), "nonexistent-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing key")
	}
}

func TestMySQLState_Delete(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMySQLStateRepository(db)

	if err := repo.Save(ctx, "delete-session", []byte(`{}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := repo.Delete(ctx, "delete-session"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := repo.Load(ctx, "delete-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
