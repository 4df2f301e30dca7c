package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/JasonAgung/tango-puzzle/internal/config"
	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/ports"
)

// UniqueGenerator produces graded, uniquely solvable puzzles: seed a random
// full solution, attach constraint edges consistent with it, then carve away
// givens while a second solution never appears.
type UniqueGenerator struct {
	solver ports.Solver
	cfg    *config.Config
}

func New(s ports.Solver, cfg *config.Config) *UniqueGenerator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &UniqueGenerator{solver: s, cfg: cfg}
}

// Generate builds a puzzle meeting the difficulty band exactly. When carving
// cannot reach the target given count, the whole attempt restarts from a
// fresh solution; after MaxRestarts failed attempts it reports
// ErrGenerationBudget rather than returning a weaker puzzle.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, difficulty domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	band, err := g.cfg.Band(difficulty)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	rng := rand.New(rand.NewSource(seed))
	stats := ports.Stats{}

	for attempt := 0; attempt < g.cfg.MaxRestarts; attempt++ {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return nil, stats, err
		}
		solution, err := g.seedSolution(ctx, rng, &stats)
		if err != nil {
			stats.Duration = time.Since(start)
			return nil, stats, err
		}
		edges := g.attachEdges(rng, &solution, band)
		board, ok, err := g.carve(ctx, rng, solution, edges, band, &stats)
		if err != nil {
			stats.Duration = time.Since(start)
			return nil, stats, err
		}
		if !ok {
			continue
		}
		stats.Duration = time.Since(start)
		return &domain.Puzzle{
			Grid:        board,
			Constraints: edges,
			Difficulty:  difficulty,
			Solution:    solution,
			CreatedAt:   time.Now().Unix(),
		}, stats, nil
	}
	stats.Duration = time.Since(start)
	return nil, stats, domain.ErrGenerationBudget
}

// seedSolution solves the empty board with randomized branch order, yielding
// a uniformly varied canonical solution.
func (g *UniqueGenerator) seedSolution(ctx context.Context, rng *rand.Rand, stats *ports.Stats) (domain.Grid, error) {
	empty := &domain.Board{}
	res, st, err := g.solver.Solve(ctx, empty, nil, ports.SolveOptions{Limit: 1, Rand: rng})
	stats.Nodes += st.Nodes
	if err != nil {
		return domain.Grid{}, err
	}
	// The empty board always admits solutions, so this only trips on cancellation.
	if len(res.Solutions) == 0 {
		return domain.Grid{}, ctx.Err()
	}
	return res.Solutions[0], nil
}

// attachEdges picks a band-sized number of adjacent pairs and labels each
// equal or opposite according to the solution, so every edge is consistent
// with the canonical grid by construction.
func (g *UniqueGenerator) attachEdges(rng *rand.Rand, solution *domain.Grid, band config.Band) []domain.Constraint {
	var pairs [][2]domain.CellCoord
	for r := 0; r < domain.Size; r++ {
		for c := 0; c+1 < domain.Size; c++ {
			pairs = append(pairs, [2]domain.CellCoord{{Row: r, Col: c}, {Row: r, Col: c + 1}})
		}
	}
	for r := 0; r+1 < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			pairs = append(pairs, [2]domain.CellCoord{{Row: r, Col: c}, {Row: r + 1, Col: c}})
		}
	}
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	n := band.MinEdges + rng.Intn(band.MaxEdges-band.MinEdges+1)
	if n > len(pairs) {
		n = len(pairs)
	}
	edges := make([]domain.Constraint, 0, n)
	for _, p := range pairs[:n] {
		kind := domain.KindOpposite
		if solution[p[0].Row][p[0].Col] == solution[p[1].Row][p[1].Col] {
			kind = domain.KindEqual
		}
		edges = append(edges, domain.Constraint{Kind: kind, A: p[0], B: p[1]})
	}
	return edges
}

// carve clears cells in random order, keeping a clearing only while exactly
// one solution remains. ok is false when the band's given target was not
// reached, which triggers a full restart upstream.
func (g *UniqueGenerator) carve(ctx context.Context, rng *rand.Rand, solution domain.Grid, edges []domain.Constraint, band config.Band, stats *ports.Stats) (domain.Board, bool, error) {
	board := domain.Board{Cells: solution}
	givens := domain.Size * domain.Size
	target := band.MinGivens + rng.Intn(band.MaxGivens-band.MinGivens+1)

	order := rng.Perm(domain.Size * domain.Size)
	for _, pos := range order {
		if givens <= target {
			break
		}
		if err := ctx.Err(); err != nil {
			return domain.Board{}, false, err
		}
		r, c := pos/domain.Size, pos%domain.Size
		old := board.Cells[r][c]
		board.Cells[r][c] = domain.Empty
		unique, st, err := g.solver.Unique(ctx, &board, edges)
		stats.Nodes += st.Nodes
		if err != nil {
			return domain.Board{}, false, err
		}
		if unique {
			givens--
		} else {
			board.Cells[r][c] = old
		}
	}
	if givens > target {
		return domain.Board{}, false, nil
	}
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			board.Given[r][c] = board.Cells[r][c] != domain.Empty
		}
	}
	return board, true, nil
}
