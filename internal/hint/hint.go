package hint

import (
	"context"
	"fmt"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/ports"
	"github.com/JasonAgung/tango-puzzle/internal/propagation"
	"github.com/JasonAgung/tango-puzzle/internal/validator"
)

// RuleHinter replays the propagation rules in their fixed priority to find
// the next logically forced cell and narrate why. Explanation traces fall
// back to the search engine only when no single rule fires.
type RuleHinter struct {
	eng    *propagation.Engine
	val    *validator.RuleValidator
	solver ports.Solver
}

func New(s ports.Solver) *RuleHinter {
	return &RuleHinter{eng: propagation.New(), val: validator.New(), solver: s}
}

// Hint runs one propagation pass over a copy of the board and returns the
// first forced cell in rule-priority, then row-major order. A board that
// already breaks a rule gets its violations back instead of a hint; a board
// that breaks nothing but admits no completion is reported unsolvable.
func (h *RuleHinter) Hint(ctx context.Context, b *domain.Board, constraints []domain.Constraint) (domain.HintResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.HintResult{}, err
	}
	if err := validator.CheckInput(constraints); err != nil {
		return domain.HintResult{}, err
	}
	if vr := h.val.Validate(b, constraints); !vr.Valid {
		return domain.HintResult{Status: domain.HintInvalid, Violations: vr.Violations}, nil
	}

	grid := b.Cells
	res := h.eng.Run(&grid, constraints)
	if len(res.Forced) > 0 {
		d := res.Forced[0]
		return domain.HintResult{
			Status: domain.HintFound,
			Hint: &domain.Hint{
				Cell:      d.Cell,
				Value:     d.Value,
				Rule:      d.Rule,
				Rationale: d.Rationale,
			},
		}, nil
	}
	if res.Outcome == propagation.Contradiction {
		// Nothing violates a rule yet, but some cell has no legal value left.
		return domain.HintResult{Status: domain.HintUnsolvable}, nil
	}
	return domain.HintResult{Status: domain.HintNone}, nil
}

// Explain derives the full solve path from the given board: every forced cell
// is committed to a working copy until the board is complete. Steps that
// propagation alone cannot justify are filled from a search-engine solution
// and tagged as advanced deductions, matching how a player would be told
// "this needed deeper reasoning".
func (h *RuleHinter) Explain(ctx context.Context, b *domain.Board, constraints []domain.Constraint) ([]domain.ExplanationStep, error) {
	if err := validator.CheckInput(constraints); err != nil {
		return nil, err
	}
	if vr := h.val.Validate(b, constraints); !vr.Valid {
		return nil, fmt.Errorf("%w: board already violates %d rule(s)", domain.ErrUnsolvable, len(vr.Violations))
	}

	working := domain.Board{Cells: b.Cells, Given: b.Given}
	var steps []domain.ExplanationStep
	for !working.Complete() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := h.eng.Run(&working.Cells, constraints)
		if res.Outcome == propagation.Contradiction {
			return nil, fmt.Errorf("%w: propagation reached a contradiction", domain.ErrUnsolvable)
		}
		for _, d := range res.Forced {
			steps = append(steps, domain.ExplanationStep{
				Step:      len(steps) + 1,
				Cell:      d.Cell,
				Value:     d.Value,
				Rule:      d.Rule,
				Rationale: d.Rationale,
			})
		}
		if working.Complete() {
			break
		}
		if len(res.Forced) == 0 {
			step, err := h.searchStep(ctx, &working, constraints)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
			steps[len(steps)-1].Step = len(steps)
		}
	}
	return steps, nil
}

// searchStep fills the first empty cell from a full solution when no local
// rule applies.
func (h *RuleHinter) searchStep(ctx context.Context, working *domain.Board, constraints []domain.Constraint) (domain.ExplanationStep, error) {
	res, _, err := h.solver.Solve(ctx, working, constraints, ports.SolveOptions{Limit: 1})
	if err != nil {
		return domain.ExplanationStep{}, err
	}
	if len(res.Solutions) == 0 {
		return domain.ExplanationStep{}, fmt.Errorf("%w: no completion exists", domain.ErrUnsolvable)
	}
	sol := res.Solutions[0]
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			if working.Cells[r][c] != domain.Empty {
				continue
			}
			working.Cells[r][c] = sol[r][c]
			return domain.ExplanationStep{
				Cell:      domain.CellCoord{Row: r, Col: c},
				Value:     sol[r][c],
				Rule:      domain.RuleSearch,
				Rationale: "determined through constraint propagation and logical deduction",
			}, nil
		}
	}
	return domain.ExplanationStep{}, fmt.Errorf("%w: board unexpectedly complete", domain.ErrUnsolvable)
}

// Summarize counts rule usage over a trace, the shape the explanation
// endpoint reports alongside the steps.
func Summarize(steps []domain.ExplanationStep) map[domain.RuleKind]int {
	out := map[domain.RuleKind]int{}
	for _, s := range steps {
		out[s.Rule]++
	}
	return out
}
