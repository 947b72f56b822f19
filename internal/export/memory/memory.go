// Package memory is an in-memory SummaryWriter for tests and local runs
// without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/export"
)

type Store struct {
	mu     sync.Mutex
	writes [][]core.MonthFlow
}

var _ export.SummaryWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// WriteMonthlySummary stores a copy of the rows and returns a synthetic
// reference.
func (s *Store) WriteMonthlySummary(_ context.Context, months []core.MonthFlow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, append([]core.MonthFlow(nil), months...))
	return fmt.Sprintf("mem:%d", len(s.writes)), nil
}

// Last returns the rows of the most recent write.
func (s *Store) Last() []core.MonthFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.writes) == 0 {
		return nil
	}
	return s.writes[len(s.writes)-1]
}

// Writes returns how many summaries have been written.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}
