package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leavedesk/leavedesk/internal/common"
	"github.com/leavedesk/leavedesk/internal/dbx"
)

// SQLiteStore persists the credential pair in the local database, the
// durable analog of the web client's localStorage entries. Values live in
// the session table as two fixed keys.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Credentials(ctx context.Context) (Credentials, error) {
	access, err := s.get(ctx, s.db, common.AccessTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := s.get(ctx, s.db, common.RefreshTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Access: access, Refresh: refresh}, nil
}

func (s *SQLiteStore) SetPair(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, common.AccessTokenKey, access); err != nil {
			return err
		}
		return s.set(ctx, tx, common.RefreshTokenKey, refresh)
	})
}

func (s *SQLiteStore) SetAccess(ctx context.Context, access string) error {
	return s.set(ctx, s.db, common.AccessTokenKey, access)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
