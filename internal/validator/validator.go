package validator

import (
	"fmt"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
)

// RuleValidator checks a board against every Tango rule and reports the full
// violation list, never stopping at the first failure.
type RuleValidator struct{}

func New() *RuleValidator { return &RuleValidator{} }

// CheckInput rejects malformed constraint edges before any solving begins:
// unknown kinds, out-of-range coordinates, and non-adjacent endpoints.
func CheckInput(constraints []domain.Constraint) error {
	for i, ct := range constraints {
		if ct.Kind != domain.KindEqual && ct.Kind != domain.KindOpposite {
			return fmt.Errorf("%w: constraint %d has unknown kind %q", domain.ErrInvalidInput, i, ct.Kind)
		}
		if !ct.A.InBounds() || !ct.B.InBounds() {
			return fmt.Errorf("%w: constraint %d references a cell off the board", domain.ErrInvalidInput, i)
		}
		if !domain.Adjacent(ct.A, ct.B) {
			return fmt.Errorf("%w: constraint %d connects non-adjacent cells (%d,%d)-(%d,%d)",
				domain.ErrInvalidInput, i, ct.A.Row, ct.A.Col, ct.B.Row, ct.B.Col)
		}
	}
	return nil
}

// Validate is pure: it never mutates the board. Violation order is stable —
// row counts, column counts, horizontal runs, vertical runs, then constraint
// edges in declaration order — so repeated calls on the same input produce
// identical results.
func (v *RuleValidator) Validate(b *domain.Board, constraints []domain.Constraint) domain.ValidationResult {
	var out []domain.Violation
	out = append(out, rowCountViolations(&b.Cells)...)
	out = append(out, columnCountViolations(&b.Cells)...)
	out = append(out, consecutiveViolations(&b.Cells)...)
	out = append(out, constraintViolations(&b.Cells, constraints)...)

	valid := len(out) == 0
	return domain.ValidationResult{
		Valid:      valid,
		Complete:   valid && b.Complete(),
		Violations: out,
	}
}

// lineCount tallies one symbol along a row (horizontal) or column.
func lineCount(g *domain.Grid, row, col int, horizontal bool, sym domain.Cell) (int, []domain.CellCoord) {
	n := 0
	var cells []domain.CellCoord
	for i := 0; i < domain.Size; i++ {
		r, c := row, i
		if !horizontal {
			r, c = i, col
		}
		if g[r][c] == sym {
			n++
			cells = append(cells, domain.CellCoord{Row: r, Col: c})
		}
	}
	return n, cells
}

func rowCountViolations(g *domain.Grid) []domain.Violation {
	var out []domain.Violation
	for r := 0; r < domain.Size; r++ {
		for _, sym := range []domain.Cell{domain.Sun, domain.Moon} {
			if n, cells := lineCount(g, r, 0, true, sym); n > domain.MaxPerLine {
				out = append(out, domain.Violation{
					Kind:    domain.ViolationRowCount,
					Cells:   cells,
					Message: fmt.Sprintf("row %d has %d %ss (max %d)", r, n, sym, domain.MaxPerLine),
				})
			}
		}
	}
	return out
}

func columnCountViolations(g *domain.Grid) []domain.Violation {
	var out []domain.Violation
	for c := 0; c < domain.Size; c++ {
		for _, sym := range []domain.Cell{domain.Sun, domain.Moon} {
			if n, cells := lineCount(g, 0, c, false, sym); n > domain.MaxPerLine {
				out = append(out, domain.Violation{
					Kind:    domain.ViolationColumnCount,
					Cells:   cells,
					Message: fmt.Sprintf("column %d has %d %ss (max %d)", c, n, sym, domain.MaxPerLine),
				})
			}
		}
	}
	return out
}

func consecutiveViolations(g *domain.Grid) []domain.Violation {
	var out []domain.Violation
	// horizontal windows, row-major
	for r := 0; r < domain.Size; r++ {
		for c := 0; c+2 < domain.Size; c++ {
			v := g[r][c]
			if v != domain.Empty && g[r][c+1] == v && g[r][c+2] == v {
				out = append(out, domain.Violation{
					Kind:    domain.ViolationConsecutiveH,
					Cells:   []domain.CellCoord{{Row: r, Col: c}, {Row: r, Col: c + 1}, {Row: r, Col: c + 2}},
					Message: fmt.Sprintf("three consecutive %ss in row %d", v, r),
				})
			}
		}
	}
	// vertical windows
	for c := 0; c < domain.Size; c++ {
		for r := 0; r+2 < domain.Size; r++ {
			v := g[r][c]
			if v != domain.Empty && g[r+1][c] == v && g[r+2][c] == v {
				out = append(out, domain.Violation{
					Kind:    domain.ViolationConsecutiveV,
					Cells:   []domain.CellCoord{{Row: r, Col: c}, {Row: r + 1, Col: c}, {Row: r + 2, Col: c}},
					Message: fmt.Sprintf("three consecutive %ss in column %d", v, c),
				})
			}
		}
	}
	return out
}

func constraintViolations(g *domain.Grid, constraints []domain.Constraint) []domain.Violation {
	var out []domain.Violation
	for _, ct := range constraints {
		a := g[ct.A.Row][ct.A.Col]
		b := g[ct.B.Row][ct.B.Col]
		if a == domain.Empty || b == domain.Empty {
			continue
		}
		broken := (ct.Kind == domain.KindEqual && a != b) ||
			(ct.Kind == domain.KindOpposite && a == b)
		if broken {
			out = append(out, domain.Violation{
				Kind:  domain.ViolationConstraint,
				Cells: []domain.CellCoord{ct.A, ct.B},
				Message: fmt.Sprintf("cells (%d,%d) and (%d,%d) break their %s constraint",
					ct.A.Row, ct.A.Col, ct.B.Row, ct.B.Col, ct.Kind),
			})
		}
	}
	return out
}
