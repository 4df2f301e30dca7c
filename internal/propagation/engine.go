package propagation

import "github.com/JasonAgung/tango-puzzle/internal/domain"

// Outcome classifies a propagation run.
type Outcome int

const (
	// Fixpoint: no rule fired; the board is unchanged.
	Fixpoint Outcome = iota
	// Progress: at least one cell was forced and no contradiction arose.
	Progress
	// Contradiction: a forced value was illegal or some empty cell lost both
	// candidates. The grid keeps the assignments applied before the conflict;
	// callers undo via Forced.
	Contradiction
)

// Result reports what a propagation run did. Forced lists every assignment
// applied, in the order the rules fired, which doubles as the undo trail and
// as the deduction sequence the hint engine narrates.
type Result struct {
	Outcome  Outcome
	Forced   []Deduction
	Conflict *domain.CellCoord
}

// Engine narrows the board using the four inference rules until fixpoint or
// contradiction. It holds no state; a single Engine may serve concurrent
// solves as long as each call owns its grid.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Run applies whichever rule fires first, highest priority first, until no
// rule fires. The grid is mutated in place; the caller owns it exclusively.
func (e *Engine) Run(g *domain.Grid, constraints []domain.Constraint) Result {
	var forced []Deduction
	for {
		d, ok := e.next(g, constraints)
		if !ok {
			break
		}
		if !legal(g, constraints, d.Cell, d.Value) {
			// The rule demands a value the cell can no longer take: its
			// domain is empty.
			cell := d.Cell
			return Result{Outcome: Contradiction, Forced: forced, Conflict: &cell}
		}
		g[d.Cell.Row][d.Cell.Col] = d.Value
		forced = append(forced, d)
	}
	// A cell no rule touches can still have lost both candidates.
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			p := domain.CellCoord{Row: r, Col: c}
			if g[r][c] == domain.Empty && len(Candidates(g, constraints, p)) == 0 {
				return Result{Outcome: Contradiction, Forced: forced, Conflict: &p}
			}
		}
	}
	if len(forced) == 0 {
		return Result{Outcome: Fixpoint}
	}
	return Result{Outcome: Progress, Forced: forced}
}

// Undo clears every assignment a Run applied, restoring the pre-run grid.
func Undo(g *domain.Grid, forced []Deduction) {
	for _, d := range forced {
		g[d.Cell.Row][d.Cell.Col] = domain.Empty
	}
}

func (e *Engine) next(g *domain.Grid, constraints []domain.Constraint) (Deduction, bool) {
	for _, rule := range rules {
		if d, ok := rule(g, constraints); ok {
			return d, true
		}
	}
	return Deduction{}, false
}
