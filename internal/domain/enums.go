package domain

import (
	"bytes"
	"fmt"
	"strings"
)

// Cell is one square of the grid: empty, sun, or moon.
type Cell uint8

const (
	Empty Cell = iota
	Sun
	Moon
)

// Opposite returns the other symbol. Empty has no opposite and maps to itself.
func (c Cell) Opposite() Cell {
	switch c {
	case Sun:
		return Moon
	case Moon:
		return Sun
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	}
	return "empty"
}

// MarshalJSON writes sun/moon as strings and empty as null, the wire names
// the frontend expects.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c == Empty {
		return []byte("null"), nil
	}
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "null", "":
		*c = Empty
	case "sun":
		*c = Sun
	case "moon":
		*c = Moon
	default:
		return fmt.Errorf("%w: unknown cell value %q", ErrInvalidInput, s)
	}
	return nil
}

// ConstraintKind relates the two endpoints of a constraint edge.
type ConstraintKind string

const (
	KindEqual    ConstraintKind = "equal"
	KindOpposite ConstraintKind = "opposite"
)

// Difficulty labels target puzzle generation.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a request string to a Difficulty, defaulting to Medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy
	case Hard:
		return Hard
	default:
		return Medium
	}
}

// RuleKind names the deduction rule that forced a cell, in propagation
// priority order.
type RuleKind string

const (
	RuleRowCount     RuleKind = "row_count"
	RuleColumnCount  RuleKind = "column_count"
	RuleConsecutive  RuleKind = "consecutive_prevention"
	RuleEqualEdge    RuleKind = "equal_constraint"
	RuleOppositeEdge RuleKind = "opposite_constraint"
	// RuleSearch marks explanation steps that needed the search engine rather
	// than a single local rule.
	RuleSearch RuleKind = "advanced_deduction"
)

// ViolationKind tags a validation error.
type ViolationKind string

const (
	ViolationRowCount     ViolationKind = "row_count"
	ViolationColumnCount  ViolationKind = "column_count"
	ViolationConsecutiveH ViolationKind = "consecutive_horizontal"
	ViolationConsecutiveV ViolationKind = "consecutive_vertical"
	ViolationConstraint   ViolationKind = "constraint_violation"
)

// HintStatus distinguishes the possible outcomes of a hint request: a board
// can admit a deduction, admit none, already break a rule, or break nothing
// yet admit no completion.
type HintStatus string

const (
	HintFound      HintStatus = "found"
	HintNone       HintStatus = "none"
	HintInvalid    HintStatus = "invalid"
	HintUnsolvable HintStatus = "unsolvable"
)
