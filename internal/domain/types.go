package domain

// Size is the fixed board edge length.
const Size = 6

// MaxPerLine is the per-symbol cap for any row or column; a complete line
// holds exactly this many of each symbol.
const MaxPerLine = Size / 2

// Grid is the raw 6×6 cell matrix.
type Grid [Size][Size]Cell

// Board holds current values and which cells are fixed givens.
type Board struct {
	Cells Grid             `json:"cells"`
	Given [Size][Size]bool `json:"given,omitempty"`
}

// Complete reports whether every cell is assigned.
func (b *Board) Complete() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// EmptyCount returns the number of unassigned cells.
func (b *Board) EmptyCount() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c] == Empty {
				n++
			}
		}
	}
	return n
}

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the coordinate lies on the board.
func (p CellCoord) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Adjacent reports whether two coordinates share a horizontal or vertical
// edge. Constraint edges may only connect adjacent cells.
func Adjacent(a, b CellCoord) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Constraint is an equal/opposite edge between two adjacent cells. Edges are
// fixed per puzzle instance.
type Constraint struct {
	Kind ConstraintKind `json:"kind"`
	A    CellCoord      `json:"a"`
	B    CellCoord      `json:"b"`
}

// Puzzle is a generated instance. Solution is the canonical solved grid and
// is kept server-side, never serialized to players.
type Puzzle struct {
	ID          string       `json:"id"`
	Grid        Board        `json:"grid"`
	Constraints []Constraint `json:"constraints"`
	Difficulty  Difficulty   `json:"difficulty"`
	Solution    Grid         `json:"-"`
	CreatedAt   int64        `json:"createdAt,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  int64      `json:"createdAt"`
}

// Violation is one broken rule with the offending coordinates.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Cells   []CellCoord   `json:"cells"`
	Message string        `json:"message"`
}

// ValidationResult reports every broken rule, never just the first.
// Complete is true only when the board is fully assigned and valid.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Complete   bool        `json:"complete"`
	Violations []Violation `json:"violations"`
}

// InvalidCells flattens the violations into a deduplicated, row-major list of
// offending coordinates for UI highlighting.
func (r ValidationResult) InvalidCells() []CellCoord {
	seen := map[CellCoord]bool{}
	for _, v := range r.Violations {
		for _, c := range v.Cells {
			seen[c] = true
		}
	}
	out := make([]CellCoord, 0, len(seen))
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if seen[CellCoord{Row: r, Col: c}] {
				out = append(out, CellCoord{Row: r, Col: c})
			}
		}
	}
	return out
}

// Hint is the next logically forced cell with the rule that forces it.
type Hint struct {
	Cell      CellCoord `json:"cell"`
	Value     Cell      `json:"value"`
	Rule      RuleKind  `json:"rule"`
	Rationale string    `json:"rationale"`
}

// HintResult carries the hint outcome. Violations is populated when
// Status is HintInvalid so the caller sees why no hint was produced.
type HintResult struct {
	Status     HintStatus  `json:"status"`
	Hint       *Hint       `json:"hint,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

// ExplanationStep is one committed deduction in a full solve derivation.
type ExplanationStep struct {
	Step      int       `json:"step"`
	Cell      CellCoord `json:"cell"`
	Value     Cell      `json:"value"`
	Rule      RuleKind  `json:"rule"`
	Rationale string    `json:"rationale"`
}
