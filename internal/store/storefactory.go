package store

import (
	"fmt"
	"log/slog"
)

const (
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

func New(storeType, connectionString string) (StackStore, error) {
	switch storeType {
	case TypeSQLite:
		s, err := NewSQLiteStore(connectionString)
		if err != nil {
			return nil, err
		}
		// Ensure the schema exists (idempotent), important for in-memory SQLite
		slog.Info("initializing stack store schema", "type", storeType)
		if err := s.CreateSchema(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
		return s, nil
	case TypeRedis:
		return NewRedisStore(connectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}
