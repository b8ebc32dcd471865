// Package store keeps the compiled stacks that were synced from image styles.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jo-hoe/rokkastyle/internal/stack"
)

var ErrStackNotFound = errors.New("stack not found")

type StoredStack struct {
	Name       string            `json:"name"`
	Hash       string            `json:"hash"`
	Operations []stack.Operation `json:"operations"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Stack returns the stored definition as a plain stack.
func (s *StoredStack) Stack() stack.Stack {
	return stack.Stack{
		Name:       s.Name,
		Operations: s.Operations,
	}
}

type StackStore interface {
	// Save inserts or replaces the stack under its name.
	Save(ctx context.Context, s stack.Stack) (*StoredStack, error)
	Get(ctx context.Context, name string) (*StoredStack, error)
	// List returns all stacks ordered by name.
	List(ctx context.Context) ([]*StoredStack, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

func newStoredStack(s stack.Stack) (*StoredStack, error) {
	hash, err := s.Hash()
	if err != nil {
		return nil, err
	}
	operations := s.Operations
	if operations == nil {
		operations = []stack.Operation{}
	}
	return &StoredStack{
		Name:       s.Name,
		Hash:       hash,
		Operations: operations,
		UpdatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}
