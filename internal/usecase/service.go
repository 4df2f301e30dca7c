package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/hint"
	"github.com/JasonAgung/tango-puzzle/internal/ports"
)

// Service is the façade the transport layer calls. Every operation works on
// an owned board snapshot; no state crosses an operation boundary except
// through Storage.
type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Generate creates, stores, and returns a new puzzle. The stored record keeps
// the canonical solution; callers serving players must strip it.
func (u *Service) Generate(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil || u.Storage == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	p, st, err := u.Generator.Generate(ctx, seed, d)
	if err != nil {
		return nil, st, err
	}
	p.ID = uuid.NewString()
	if err := u.Storage.Save(ctx, p); err != nil {
		return nil, st, err
	}
	return p, st, nil
}

func (u *Service) GetPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) ListPuzzles(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}

// constraintsFor loads the edge set of a stored puzzle. An unknown id yields
// an empty edge set so boards can be validated stand-alone.
func (u *Service) constraintsFor(ctx context.Context, id string) []domain.Constraint {
	if id == "" || u.Storage == nil {
		return nil
	}
	p, err := u.Storage.Load(ctx, id)
	if err != nil {
		return nil
	}
	return p.Constraints
}

// Validate reports every rule violation on the submitted grid under the
// stored puzzle's constraint edges.
func (u *Service) Validate(ctx context.Context, puzzleID string, grid domain.Grid) (domain.ValidationResult, error) {
	if u.Validator == nil {
		return domain.ValidationResult{}, errNotConfigured
	}
	b := &domain.Board{Cells: grid}
	return u.Validator.Validate(b, u.constraintsFor(ctx, puzzleID)), nil
}

// Solve completes the submitted grid and returns the solution with its
// step-by-step derivation.
func (u *Service) Solve(ctx context.Context, puzzleID string, grid domain.Grid) (domain.Grid, []domain.ExplanationStep, ports.Stats, error) {
	if u.Solver == nil || u.Hinter == nil {
		return domain.Grid{}, nil, ports.Stats{}, errNotConfigured
	}
	cs := u.constraintsFor(ctx, puzzleID)
	b := &domain.Board{Cells: grid}
	res, st, err := u.Solver.Solve(ctx, b, cs, ports.SolveOptions{Limit: 1})
	if err != nil {
		return domain.Grid{}, nil, st, err
	}
	if len(res.Solutions) == 0 {
		return domain.Grid{}, nil, st, fmt.Errorf("%w from puzzle %s", domain.ErrUnsolvable, puzzleID)
	}
	steps, err := u.Hinter.Explain(ctx, b, cs)
	if err != nil {
		return domain.Grid{}, nil, st, err
	}
	return res.Solutions[0], steps, st, nil
}

func (u *Service) Hint(ctx context.Context, puzzleID string, grid domain.Grid) (domain.HintResult, error) {
	if u.Hinter == nil {
		return domain.HintResult{}, errNotConfigured
	}
	b := &domain.Board{Cells: grid}
	return u.Hinter.Hint(ctx, b, u.constraintsFor(ctx, puzzleID))
}

// Explain returns the full derivation plus a per-rule usage summary.
func (u *Service) Explain(ctx context.Context, puzzleID string, grid domain.Grid) ([]domain.ExplanationStep, map[domain.RuleKind]int, error) {
	if u.Hinter == nil {
		return nil, nil, errNotConfigured
	}
	b := &domain.Board{Cells: grid}
	steps, err := u.Hinter.Explain(ctx, b, u.constraintsFor(ctx, puzzleID))
	if err != nil {
		return nil, nil, err
	}
	return steps, hint.Summarize(steps), nil
}

// Check probes the current grid: does any completion exist, and is it unique?
func (u *Service) Check(ctx context.Context, puzzleID string, grid domain.Grid) (solvable, unique bool, err error) {
	if u.Solver == nil {
		return false, false, errNotConfigured
	}
	b := &domain.Board{Cells: grid}
	res, _, err := u.Solver.Solve(ctx, b, u.constraintsFor(ctx, puzzleID), ports.SolveOptions{Limit: 2})
	if err != nil {
		return false, false, err
	}
	return len(res.Solutions) > 0, len(res.Solutions) == 1, nil
}
