// Package memory provides an in-process history slot for tests and
// throwaway sessions.
package memory

import (
	"context"
	"sync"
)

// Slot holds the blob in memory.
type Slot struct {
	mu    sync.RWMutex
	blob  string
	isSet bool
}

// New creates an empty Slot.
func New() *Slot {
	return &Slot{}
}

// NewWithBlob creates a Slot pre-populated with blob.
func NewWithBlob(blob string) *Slot {
	return &Slot{blob: blob, isSet: true}
}

func (s *Slot) Read(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blob, s.isSet, nil
}

func (s *Slot) Write(_ context.Context, blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = blob
	s.isSet = true
	return nil
}

func (s *Slot) Remove(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = ""
	s.isSet = false
	return nil
}
