package ports

import (
	"context"
	"math/rand"
	"time"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// SolveOptions bounds and steers a search.
type SolveOptions struct {
	// Limit caps the number of solutions collected; 0 means 1. Uniqueness
	// checks use 2: a second solution proves non-uniqueness.
	Limit int
	// Rand, when set, randomizes branch order (used for generator seeding).
	// Nil keeps the deterministic sun-before-moon order.
	Rand *rand.Rand
}

// SolveResult holds up to Limit full solutions. Exhausted means the whole
// space was searched without hitting the limit, so an empty Solutions slice
// with Exhausted true proves the board unsolvable.
type SolveResult struct {
	Solutions []domain.Grid
	Exhausted bool
}

// Solver completes partial boards and tests uniqueness.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board, constraints []domain.Constraint, opts SolveOptions) (SolveResult, Stats, error)
	Unique(ctx context.Context, b *domain.Board, constraints []domain.Constraint) (bool, Stats, error)
}

// Generator creates uniquely solvable puzzles at a target difficulty.
type Generator interface {
	Generate(ctx context.Context, seed int64, difficulty domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Validator reports every rule violation on a board.
type Validator interface {
	Validate(b *domain.Board, constraints []domain.Constraint) domain.ValidationResult
}

// Hinter finds the next logically forced cell and can replay a full
// derivation.
type Hinter interface {
	Hint(ctx context.Context, b *domain.Board, constraints []domain.Constraint) (domain.HintResult, error)
	Explain(ctx context.Context, b *domain.Board, constraints []domain.Constraint) ([]domain.ExplanationStep, error)
}

// Storage keeps generated puzzles, canonical solutions included, so they can
// be served by id with the solution stripped.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
