package httpadapter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/generator"
	"github.com/JasonAgung/tango-puzzle/internal/hint"
	"github.com/JasonAgung/tango-puzzle/internal/infrastructure/storage"
	"github.com/JasonAgung/tango-puzzle/internal/solver"
	"github.com/JasonAgung/tango-puzzle/internal/usecase"
	"github.com/JasonAgung/tango-puzzle/internal/validator"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := solver.New()
	svc := usecase.NewService(s, generator.New(s, nil), validator.New(), hint.New(s), storage.NewMemory())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	New(svc, log).Register(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type puzzlePayload struct {
	ID          string              `json:"id"`
	Grid        domain.Grid         `json:"grid"`
	Constraints []domain.Constraint `json:"constraints"`
	Difficulty  domain.Difficulty   `json:"difficulty"`
}

type gridBody struct {
	PuzzleID string      `json:"puzzle_id"`
	Grid     domain.Grid `json:"grid"`
}

func generatePuzzle(t *testing.T, r *gin.Engine) puzzlePayload {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/puzzles/generate",
		gin.H{"difficulty": "easy", "seed": 42})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Puzzle puzzlePayload `json:"puzzle"`
		Seed   int64         `json:"seed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Puzzle.ID)
	assert.Equal(t, int64(42), resp.Seed)
	return resp.Puzzle
}

func TestGenerateAndFetchPuzzle(t *testing.T) {
	r := newRouter()
	p := generatePuzzle(t, r)
	assert.Equal(t, domain.Easy, p.Difficulty)
	assert.NotContains(t, doJSON(t, r, http.MethodPost, "/api/v1/puzzles/generate",
		gin.H{"difficulty": "easy", "seed": 42}).Body.String(), "solution")

	w := doJSON(t, r, http.MethodGet, "/api/v1/puzzles/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Puzzle puzzlePayload `json:"puzzle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, p.Grid, resp.Puzzle.Grid)
	assert.Equal(t, p.Constraints, resp.Puzzle.Constraints)
}

func TestGetPuzzleNotFound(t *testing.T) {
	r := newRouter()
	w := doJSON(t, r, http.MethodGet, "/api/v1/puzzles/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPuzzles(t *testing.T) {
	r := newRouter()
	p := generatePuzzle(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/puzzles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Puzzles []domain.PuzzleMeta `json:"puzzles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Puzzles, 1)
	assert.Equal(t, p.ID, resp.Puzzles[0].ID)
}

func TestValidateInitialGrid(t *testing.T) {
	r := newRouter()
	p := generatePuzzle(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/puzzles/validate",
		gridBody{PuzzleID: p.ID, Grid: p.Grid})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Valid        bool               `json:"valid"`
		Complete     bool               `json:"complete"`
		InvalidCells []domain.CellCoord `json:"invalid_cells"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.False(t, resp.Complete)
	assert.Empty(t, resp.InvalidCells)
}

func TestValidateFlagsRun(t *testing.T) {
	r := newRouter()
	g := domain.Grid{}
	g[0][0], g[0][1], g[0][2] = domain.Sun, domain.Sun, domain.Sun

	w := doJSON(t, r, http.MethodPost, "/api/v1/puzzles/validate", gridBody{Grid: g})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Valid        bool               `json:"valid"`
		InvalidCells []domain.CellCoord `json:"invalid_cells"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Len(t, resp.InvalidCells, 3)
}

func TestSolveEndpoint(t *testing.T) {
	r := newRouter()
	p := generatePuzzle(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solver/solve",
		gridBody{PuzzleID: p.ID, Grid: p.Grid})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Solution domain.Grid              `json:"solution"`
		Steps    []domain.ExplanationStep `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Steps)

	vr := validator.New().Validate(&domain.Board{Cells: resp.Solution}, nil)
	assert.True(t, vr.Valid)
	assert.True(t, vr.Complete)
}

func TestSolveUnsolvableGrid(t *testing.T) {
	r := newRouter()
	g := domain.Grid{}
	// four suns in row 0 cannot be completed
	g[0][0], g[0][1], g[0][3], g[0][4] = domain.Sun, domain.Sun, domain.Sun, domain.Sun

	w := doJSON(t, r, http.MethodPost, "/api/v1/solver/solve", gridBody{Grid: g})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHintEndpoint(t *testing.T) {
	r := newRouter()
	p := generatePuzzle(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solver/hint",
		gridBody{PuzzleID: p.ID, Grid: p.Grid})
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.HintResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, []domain.HintStatus{domain.HintFound, domain.HintNone}, resp.Status)
}

func TestExplainEndpoint(t *testing.T) {
	r := newRouter()
	p := generatePuzzle(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solver/explain",
		gridBody{PuzzleID: p.ID, Grid: p.Grid})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Steps   []domain.ExplanationStep `json:"steps"`
		Summary map[domain.RuleKind]int  `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Steps)
	total := 0
	for _, n := range resp.Summary {
		total += n
	}
	assert.Equal(t, len(resp.Steps), total)
}

func TestCheckEndpoint(t *testing.T) {
	r := newRouter()
	p := generatePuzzle(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solver/check",
		gridBody{PuzzleID: p.ID, Grid: p.Grid})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Solvable bool `json:"solvable"`
		Unique   bool `json:"unique"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Solvable)
	assert.True(t, resp.Unique)
}

func TestHealthz(t *testing.T) {
	r := newRouter()
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMalformedJSONRejected(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/puzzles/validate", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
