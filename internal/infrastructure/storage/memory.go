package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
)

// Memory keeps puzzles in process memory behind the Storage port. Solutions
// stay server-side here; the HTTP adapter strips them from responses.
type Memory struct {
	mu sync.RWMutex
	m  map[string]domain.Puzzle
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]domain.Puzzle)}
}

func (s *Memory) Save(_ context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("%w: puzzle missing id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	cp.Constraints = append([]domain.Constraint(nil), p.Constraints...)
	s.m[p.ID] = cp
	return nil
}

func (s *Memory) Load(_ context.Context, id string) (*domain.Puzzle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	cp := p
	cp.Constraints = append([]domain.Constraint(nil), p.Constraints...)
	return &cp, nil
}

func (s *Memory) List(_ context.Context) ([]domain.PuzzleMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PuzzleMeta, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, domain.PuzzleMeta{ID: p.ID, Difficulty: p.Difficulty, CreatedAt: p.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
