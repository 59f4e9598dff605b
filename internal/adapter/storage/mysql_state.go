package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MySQLStateRepository is the durable alternative to Redis for the persisted
// state subset. Expected schema:
//
//	CREATE TABLE client_state (
//	    session_key VARCHAR(191) PRIMARY KEY,
//	    payload     MEDIUMBLOB NOT NULL,
//	    updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
//	);
type MySQLStateRepository struct {
	db *sql.DB
}

func NewMySQLStateRepository(db *sql.DB) *MySQLStateRepository {
	return &MySQLStateRepository{db: db}
}

func (m *MySQLStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := m.db.QueryRowContext(ctx, `
		SELECT payload FROM client_state WHERE session_key = ?`, key,
	).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query client_state: %w", err)
	}
	return payload, nil
}

func (m *MySQLStateRepository) Save(ctx context.Context, key string, payload []byte) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO client_state (session_key, payload)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)`,
		key, payload,
	)
	if err != nil {
		return fmt.Errorf("upsert client_state: %w", err)
	}
	return nil
}

func (m *MySQLStateRepository) Delete(ctx context.Context, key string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM client_state WHERE session_key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete client_state: %w", err)
	}
	return nil
}
