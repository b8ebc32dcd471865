package stack

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Stack is a named, ordered list of operations as published to rokka.io.
type Stack struct {
	Name       string      `json:"name"`
	Operations []Operation `json:"operations"`
}

// Hash returns the hex encoded sha256 of the JSON encoded operations.
// encoding/json sorts map keys, so equal operation lists hash equally
// regardless of how their option maps were built.
func (s Stack) Hash() (string, error) {
	operations := s.Operations
	if operations == nil {
		operations = []Operation{}
	}
	data, err := json.Marshal(operations)
	if err != nil {
		return "", fmt.Errorf("failed to encode operations of stack %s: %w", s.Name, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
