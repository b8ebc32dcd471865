package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jo-hoe/rokkastyle/internal/stack"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteStore(connectionString string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" opens its own database
	db.SetMaxOpenConns(1)

	return &SQLiteStore{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteStore) CreateSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS stacks (
		name TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		operations TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, st stack.Stack) (*StoredStack, error) {
	stored, err := newStoredStack(st)
	if err != nil {
		return nil, err
	}
	operations, err := json.Marshal(stored.Operations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode operations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO stacks (name, hash, operations, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET hash = excluded.hash, operations = excluded.operations, updated_at = excluded.updated_at`,
		stored.Name, stored.Hash, string(operations), stored.UpdatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to save stack %s: %w", stored.Name, err)
	}
	return stored, nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (*StoredStack, error) {
	row := s.db.QueryRowContext(ctx, "SELECT name, hash, operations, updated_at FROM stacks WHERE name = ?", name)
	stored, err := scanStack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*StoredStack, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, hash, operations, updated_at FROM stacks ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	stacks := []*StoredStack{}
	for rows.Next() {
		stored, err := scanStack(rows)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, stored)
	}
	return stacks, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM stacks WHERE name = ?", name)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrStackNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStack(row rowScanner) (*StoredStack, error) {
	var (
		stored     StoredStack
		operations string
		updatedAt  int64
	)
	if err := row.Scan(&stored.Name, &stored.Hash, &operations, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(operations), &stored.Operations); err != nil {
		return nil, fmt.Errorf("failed to decode operations of stack %s: %w", stored.Name, err)
	}
	stored.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &stored, nil
}
