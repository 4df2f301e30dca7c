package propagation

import (
	"fmt"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
)

// Deduction is one forced assignment together with its justification: the
// rule that fired and the already-assigned cells that triggered it.
type Deduction struct {
	Cell      domain.CellCoord
	Value     domain.Cell
	Rule      domain.RuleKind
	Sources   []domain.CellCoord
	Rationale string
}

// ruleFn scans the grid for the first deduction this rule can make, in
// row-major order. Rules never propose assignments to filled cells.
type ruleFn func(g *domain.Grid, constraints []domain.Constraint) (Deduction, bool)

// rules is the fixed priority order. The same board state always yields the
// same deduction, which keeps hints deterministic.
var rules = []ruleFn{
	countingRule,
	runAvoidanceRule,
	equalEdgeRule,
	oppositeEdgeRule,
}

// countingRule: a line that already holds three of one symbol forces every
// remaining empty cell in that line to the other symbol. Rows are scanned
// before columns; the forced cell is the first empty one in the line.
func countingRule(g *domain.Grid, _ []domain.Constraint) (Deduction, bool) {
	for r := 0; r < domain.Size; r++ {
		if d, ok := countLine(g, r, true); ok {
			return d, true
		}
	}
	for c := 0; c < domain.Size; c++ {
		if d, ok := countLine(g, c, false); ok {
			return d, true
		}
	}
	return Deduction{}, false
}

func countLine(g *domain.Grid, idx int, horizontal bool) (Deduction, bool) {
	counts := map[domain.Cell]int{}
	sources := map[domain.Cell][]domain.CellCoord{}
	firstEmpty := domain.CellCoord{Row: -1}
	for i := 0; i < domain.Size; i++ {
		r, c := idx, i
		if !horizontal {
			r, c = i, idx
		}
		v := g[r][c]
		if v == domain.Empty {
			if firstEmpty.Row < 0 {
				firstEmpty = domain.CellCoord{Row: r, Col: c}
			}
			continue
		}
		counts[v]++
		sources[v] = append(sources[v], domain.CellCoord{Row: r, Col: c})
	}
	if firstEmpty.Row < 0 {
		return Deduction{}, false
	}
	for _, full := range []domain.Cell{domain.Sun, domain.Moon} {
		if counts[full] < domain.MaxPerLine {
			continue
		}
		forced := full.Opposite()
		rule := domain.RuleRowCount
		line := "row"
		if !horizontal {
			rule = domain.RuleColumnCount
			line = "column"
		}
		return Deduction{
			Cell:    firstEmpty,
			Value:   forced,
			Rule:    rule,
			Sources: sources[full],
			Rationale: fmt.Sprintf("%s %d already has %d %ss, so remaining cells must be %ss",
				line, idx, domain.MaxPerLine, full, forced),
		}, true
	}
	return Deduction{}, false
}

// runAvoidanceRule: in any consecutive triple along a line, two cells sharing
// a value force the third (if empty) to the opposite value. Checking every
// triple covers all three shapes: XX_, X_X, and _XX.
func runAvoidanceRule(g *domain.Grid, _ []domain.Constraint) (Deduction, bool) {
	for r := 0; r < domain.Size; r++ {
		for c := 0; c+2 < domain.Size; c++ {
			triple := [3]domain.CellCoord{{Row: r, Col: c}, {Row: r, Col: c + 1}, {Row: r, Col: c + 2}}
			if d, ok := avoidTriple(g, triple, "row", r); ok {
				return d, true
			}
		}
	}
	for c := 0; c < domain.Size; c++ {
		for r := 0; r+2 < domain.Size; r++ {
			triple := [3]domain.CellCoord{{Row: r, Col: c}, {Row: r + 1, Col: c}, {Row: r + 2, Col: c}}
			if d, ok := avoidTriple(g, triple, "column", c); ok {
				return d, true
			}
		}
	}
	return Deduction{}, false
}

func avoidTriple(g *domain.Grid, triple [3]domain.CellCoord, line string, idx int) (Deduction, bool) {
	emptyAt := -1
	var seen domain.Cell
	for i, p := range triple {
		v := g[p.Row][p.Col]
		if v == domain.Empty {
			if emptyAt >= 0 {
				return Deduction{}, false // two gaps, nothing forced
			}
			emptyAt = i
			continue
		}
		if seen == domain.Empty {
			seen = v
		} else if seen != v {
			return Deduction{}, false
		}
	}
	if emptyAt < 0 || seen == domain.Empty {
		return Deduction{}, false
	}
	target := triple[emptyAt]
	var sources []domain.CellCoord
	for i, p := range triple {
		if i != emptyAt {
			sources = append(sources, p)
		}
	}
	return Deduction{
		Cell:    target,
		Value:   seen.Opposite(),
		Rule:    domain.RuleConsecutive,
		Sources: sources,
		Rationale: fmt.Sprintf("placing a %s at (%d,%d) would create three consecutive %ss in %s %d",
			seen, target.Row, target.Col, seen, line, idx),
	}, true
}

// equalEdgeRule: an equal edge with exactly one assigned endpoint forces the
// other endpoint to the same value. Edges fire in declaration order.
func equalEdgeRule(g *domain.Grid, constraints []domain.Constraint) (Deduction, bool) {
	return edgeRule(g, constraints, domain.KindEqual)
}

// oppositeEdgeRule: as equalEdgeRule, but forces the opposite value.
func oppositeEdgeRule(g *domain.Grid, constraints []domain.Constraint) (Deduction, bool) {
	return edgeRule(g, constraints, domain.KindOpposite)
}

func edgeRule(g *domain.Grid, constraints []domain.Constraint, kind domain.ConstraintKind) (Deduction, bool) {
	for _, ct := range constraints {
		if ct.Kind != kind {
			continue
		}
		a := g[ct.A.Row][ct.A.Col]
		b := g[ct.B.Row][ct.B.Col]
		src, dst := ct.A, ct.B
		val := a
		if a == domain.Empty && b != domain.Empty {
			src, dst = ct.B, ct.A
			val = b
		} else if a == domain.Empty || b != domain.Empty {
			continue
		}
		forced := val
		rel := "equal"
		if kind == domain.KindOpposite {
			forced = val.Opposite()
			rel = "opposite"
		}
		rule := domain.RuleEqualEdge
		if kind == domain.KindOpposite {
			rule = domain.RuleOppositeEdge
		}
		return Deduction{
			Cell:    dst,
			Value:   forced,
			Rule:    rule,
			Sources: []domain.CellCoord{src},
			Rationale: fmt.Sprintf("must be %s due to %s constraint with cell (%d,%d)",
				forced, rel, src.Row, src.Col),
		}, true
	}
	return Deduction{}, false
}

// Candidates returns the symbols still legal at an empty cell: those that
// would not immediately break a count, run, or edge rule. An empty result on
// an empty cell signals a contradiction.
func Candidates(g *domain.Grid, constraints []domain.Constraint, p domain.CellCoord) []domain.Cell {
	if g[p.Row][p.Col] != domain.Empty {
		return nil
	}
	var out []domain.Cell
	for _, v := range []domain.Cell{domain.Sun, domain.Moon} {
		if legal(g, constraints, p, v) {
			out = append(out, v)
		}
	}
	return out
}

func legal(g *domain.Grid, constraints []domain.Constraint, p domain.CellCoord, v domain.Cell) bool {
	rowN, colN := 0, 0
	for i := 0; i < domain.Size; i++ {
		if g[p.Row][i] == v {
			rowN++
		}
		if g[i][p.Col] == v {
			colN++
		}
	}
	if rowN >= domain.MaxPerLine || colN >= domain.MaxPerLine {
		return false
	}
	if makesRun(g, p, v) {
		return false
	}
	for _, ct := range constraints {
		var other domain.CellCoord
		switch p {
		case ct.A:
			other = ct.B
		case ct.B:
			other = ct.A
		default:
			continue
		}
		o := g[other.Row][other.Col]
		if o == domain.Empty {
			continue
		}
		if ct.Kind == domain.KindEqual && o != v {
			return false
		}
		if ct.Kind == domain.KindOpposite && o == v {
			return false
		}
	}
	return true
}

// makesRun reports whether assigning v at p completes a same-symbol triple in
// its row or column.
func makesRun(g *domain.Grid, p domain.CellCoord, v domain.Cell) bool {
	at := func(r, c int) domain.Cell {
		if r < 0 || r >= domain.Size || c < 0 || c >= domain.Size {
			return domain.Empty
		}
		if r == p.Row && c == p.Col {
			return v
		}
		return g[r][c]
	}
	for d := -2; d <= 0; d++ {
		if at(p.Row, p.Col+d) == v && at(p.Row, p.Col+d+1) == v && at(p.Row, p.Col+d+2) == v {
			return true
		}
		if at(p.Row+d, p.Col) == v && at(p.Row+d+1, p.Col) == v && at(p.Row+d+2, p.Col) == v {
			return true
		}
	}
	return false
}
