package solver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/ports"
	"github.com/JasonAgung/tango-puzzle/internal/propagation"
	"github.com/JasonAgung/tango-puzzle/internal/validator"
)

// PropagatingSolver interleaves rule propagation with depth-first search.
// Propagation runs to fixpoint after every tentative assignment; search only
// branches on cells propagation could not settle. Each Solve call owns its
// working grid exclusively, so one solver serves concurrent calls.
type PropagatingSolver struct {
	eng *propagation.Engine
	val *validator.RuleValidator
}

func New() *PropagatingSolver {
	return &PropagatingSolver{eng: propagation.New(), val: validator.New()}
}

// Solve completes the board, collecting up to opts.Limit solutions. Given
// cells are never touched: search assigns only empty cells and undoes every
// assignment on backtrack, so the caller's board is never mutated.
func (s *PropagatingSolver) Solve(ctx context.Context, b *domain.Board, constraints []domain.Constraint, opts ports.SolveOptions) (ports.SolveResult, ports.Stats, error) {
	start := time.Now()
	if err := validator.CheckInput(constraints); err != nil {
		return ports.SolveResult{}, ports.Stats{}, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 1
	}
	// Search legality only guards new assignments; givens that already break a
	// rule must be rejected here or they would leak into "solutions".
	if vr := s.val.Validate(b, constraints); !vr.Valid {
		return ports.SolveResult{Exhausted: true}, ports.Stats{Duration: time.Since(start)}, nil
	}

	grid := b.Cells
	st := searchState{
		eng:         s.eng,
		constraints: constraints,
		limit:       limit,
		rand:        opts.Rand,
	}
	stop, err := st.dfs(ctx, &grid)
	stats := ports.Stats{Nodes: st.nodes, Duration: time.Since(start)}
	if err != nil {
		return ports.SolveResult{}, stats, err
	}
	return ports.SolveResult{Solutions: st.solutions, Exhausted: !stop}, stats, nil
}

// Unique reports whether exactly one completion exists.
func (s *PropagatingSolver) Unique(ctx context.Context, b *domain.Board, constraints []domain.Constraint) (bool, ports.Stats, error) {
	res, stats, err := s.Solve(ctx, b, constraints, ports.SolveOptions{Limit: 2})
	if err != nil {
		return false, stats, err
	}
	return len(res.Solutions) == 1, stats, nil
}

// SolveOne returns the single completed board, or ErrUnsolvable when the
// search space holds no solution.
func (s *PropagatingSolver) SolveOne(ctx context.Context, b *domain.Board, constraints []domain.Constraint) (*domain.Board, ports.Stats, error) {
	res, stats, err := s.Solve(ctx, b, constraints, ports.SolveOptions{Limit: 1})
	if err != nil {
		return nil, stats, err
	}
	if len(res.Solutions) == 0 {
		return nil, stats, fmt.Errorf("%w after %d nodes", domain.ErrUnsolvable, stats.Nodes)
	}
	return &domain.Board{Cells: res.Solutions[0], Given: b.Given}, stats, nil
}

type searchState struct {
	eng         *propagation.Engine
	constraints []domain.Constraint
	limit       int
	rand        *rand.Rand

	solutions []domain.Grid
	nodes     int
}

// dfs explores one decision level. It returns stop=true once the solution
// limit is reached so ancestors unwind immediately. The grid is restored to
// its entry state on every return path: propagation assignments via the
// engine's forced trail, the branch assignment by resetting the cell.
func (st *searchState) dfs(ctx context.Context, g *domain.Grid) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}
	res := st.eng.Run(g, st.constraints)
	defer propagation.Undo(g, res.Forced)
	if res.Outcome == propagation.Contradiction {
		return false, nil
	}
	cell, candidates, found := st.pickCell(g)
	if !found {
		st.solutions = append(st.solutions, *g)
		return len(st.solutions) >= st.limit, nil
	}
	if st.rand != nil && len(candidates) == 2 && st.rand.Intn(2) == 1 {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, v := range candidates {
		st.nodes++
		g[cell.Row][cell.Col] = v
		stop, err := st.dfs(ctx, g)
		g[cell.Row][cell.Col] = domain.Empty
		if stop || err != nil {
			return stop, err
		}
	}
	return false, nil
}

// pickCell selects the empty cell with the fewest legal values, ties broken
// by row-major order. Candidates come back sun before moon.
func (st *searchState) pickCell(g *domain.Grid) (domain.CellCoord, []domain.Cell, bool) {
	var best domain.CellCoord
	var bestCands []domain.Cell
	found := false
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			if g[r][c] != domain.Empty {
				continue
			}
			p := domain.CellCoord{Row: r, Col: c}
			cands := propagation.Candidates(g, st.constraints, p)
			if !found || len(cands) < len(bestCands) {
				best, bestCands, found = p, cands, true
				if len(bestCands) == 0 {
					return best, bestCands, true
				}
			}
		}
	}
	return best, bestCands, found
}
