package hint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/solver"
	"github.com/JasonAgung/tango-puzzle/internal/validator"
)

func gridOf(rows ...string) domain.Grid {
	var g domain.Grid
	for r, row := range rows {
		for c, ch := range row {
			switch ch {
			case 'S':
				g[r][c] = domain.Sun
			case 'M':
				g[r][c] = domain.Moon
			}
		}
	}
	return g
}

var solved = gridOf(
	"SSMSMM",
	"MMSMSS",
	"SSMSMM",
	"MMSMSS",
	"SSMSMM",
	"MMSMSS",
)

func newHinter() *RuleHinter { return New(solver.New()) }

func TestHintCountingRuleOneCellShort(t *testing.T) {
	// One cell short of completion; the missing cell's row already has three
	// suns, so it is forced to moon by the counting rule.
	g := solved
	g[0][5] = domain.Empty

	res, err := newHinter().Hint(context.Background(), &domain.Board{Cells: g}, nil)
	require.NoError(t, err)
	require.Equal(t, domain.HintFound, res.Status)
	require.NotNil(t, res.Hint)
	assert.Equal(t, domain.CellCoord{Row: 0, Col: 5}, res.Hint.Cell)
	assert.Equal(t, domain.Moon, res.Hint.Value)
	assert.Equal(t, domain.RuleRowCount, res.Hint.Rule)
	assert.Contains(t, res.Hint.Rationale, "row 0")
}

func TestHintOnInvalidBoardSurfacesViolations(t *testing.T) {
	g := gridOf("SSS...")
	res, err := newHinter().Hint(context.Background(), &domain.Board{Cells: g}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.HintInvalid, res.Status)
	assert.Nil(t, res.Hint)
	require.NotEmpty(t, res.Violations)
	assert.Equal(t, domain.ViolationConsecutiveH, res.Violations[0].Kind)
}

func TestHintOnDeadBoardReportsUnsolvable(t *testing.T) {
	// Nothing violates a rule yet, but the sun pair plus the equal edge onto
	// the third cell leaves (0,2) with no legal value.
	g := gridOf("SS....")
	edges := []domain.Constraint{{
		Kind: domain.KindEqual,
		A:    domain.CellCoord{Row: 0, Col: 1},
		B:    domain.CellCoord{Row: 0, Col: 2},
	}}
	res, err := newHinter().Hint(context.Background(), &domain.Board{Cells: g}, edges)
	require.NoError(t, err)
	assert.Equal(t, domain.HintUnsolvable, res.Status)
	assert.Empty(t, res.Violations)
}

func TestHintNoneWhenNothingIsForced(t *testing.T) {
	res, err := newHinter().Hint(context.Background(), &domain.Board{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.HintNone, res.Status)
}

func TestHintCommitKeepsBoardValid(t *testing.T) {
	// Committing a hint never makes a previously valid board invalid.
	h := newHinter()
	v := validator.New()
	b := domain.Board{Cells: solved}
	b.Cells[0][5] = domain.Empty
	b.Cells[1][0] = domain.Empty

	for {
		res, err := h.Hint(context.Background(), &b, nil)
		require.NoError(t, err)
		if res.Status != domain.HintFound {
			break
		}
		b.Cells[res.Hint.Cell.Row][res.Hint.Cell.Col] = res.Hint.Value
		assert.True(t, v.Validate(&b, nil).Valid)
	}
	assert.True(t, b.Complete())
}

func TestExplainReconstructsSolution(t *testing.T) {
	g := solved
	for _, p := range []domain.CellCoord{{Row: 0, Col: 1}, {Row: 0, Col: 5}, {Row: 2, Col: 2}, {Row: 3, Col: 0}, {Row: 4, Col: 4}, {Row: 5, Col: 3}} {
		g[p.Row][p.Col] = domain.Empty
	}

	steps, err := newHinter().Explain(context.Background(), &domain.Board{Cells: g}, nil)
	require.NoError(t, err)
	require.Len(t, steps, 6)

	replay := g
	for i, s := range steps {
		assert.Equal(t, i+1, s.Step)
		assert.Equal(t, domain.Empty, replay[s.Cell.Row][s.Cell.Col], "step %d targets a filled cell", s.Step)
		assert.NotEmpty(t, s.Rationale)
		replay[s.Cell.Row][s.Cell.Col] = s.Value
	}
	assert.Equal(t, solved, replay)
}

func TestExplainFromEmptyBoardUsesSearchSteps(t *testing.T) {
	steps, err := newHinter().Explain(context.Background(), &domain.Board{}, nil)
	require.NoError(t, err)
	require.Len(t, steps, domain.Size*domain.Size)

	sawSearch := false
	replay := domain.Grid{}
	for _, s := range steps {
		if s.Rule == domain.RuleSearch {
			sawSearch = true
		}
		replay[s.Cell.Row][s.Cell.Col] = s.Value
	}
	assert.True(t, sawSearch, "an unconstrained start needs at least one search-backed step")

	vr := validator.New().Validate(&domain.Board{Cells: replay}, nil)
	assert.True(t, vr.Valid)
	assert.True(t, vr.Complete)
}

func TestExplainUnsolvableBoardFails(t *testing.T) {
	g := gridOf("SS....")
	edges := []domain.Constraint{{
		Kind: domain.KindEqual,
		A:    domain.CellCoord{Row: 0, Col: 1},
		B:    domain.CellCoord{Row: 0, Col: 2},
	}}
	_, err := newHinter().Explain(context.Background(), &domain.Board{Cells: g}, edges)
	assert.ErrorIs(t, err, domain.ErrUnsolvable)
}

func TestSummarize(t *testing.T) {
	steps := []domain.ExplanationStep{
		{Rule: domain.RuleRowCount},
		{Rule: domain.RuleRowCount},
		{Rule: domain.RuleSearch},
	}
	sum := Summarize(steps)
	assert.Equal(t, 2, sum[domain.RuleRowCount])
	assert.Equal(t, 1, sum[domain.RuleSearch])
}
