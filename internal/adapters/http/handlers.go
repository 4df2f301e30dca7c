package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/usecase"
)

// Handler maps the REST surface onto the use-case façade.
type Handler struct {
	UC  *usecase.Service
	Log *slog.Logger
}

func New(uc *usecase.Service, log *slog.Logger) *Handler {
	return &Handler{UC: uc, Log: log}
}

// Register wires routes and middleware onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(RequestLogger(h.Log), Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/puzzles/generate", h.generate)
		v1.GET("/puzzles", h.list)
		v1.GET("/puzzles/:id", h.getPuzzle)
		v1.POST("/puzzles/validate", h.validate)

		v1.POST("/solver/solve", h.solve)
		v1.POST("/solver/hint", h.hint)
		v1.POST("/solver/explain", h.explain)
		v1.POST("/solver/check", h.check)
	}
}

// abort maps domain errors onto HTTP statuses.
func abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsolvable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGenerationBudget):
		status = http.StatusServiceUnavailable
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

type generateReq struct {
	Difficulty string `json:"difficulty"`
	Seed       int64  `json:"seed"`
}

type puzzleResp struct {
	ID          string              `json:"id"`
	Grid        domain.Grid         `json:"grid"`
	Constraints []domain.Constraint `json:"constraints"`
	Difficulty  domain.Difficulty   `json:"difficulty"`
	CreatedAt   int64               `json:"createdAt"`
}

// toResp strips the canonical solution: it never leaves the server.
func toResp(p *domain.Puzzle) puzzleResp {
	return puzzleResp{
		ID:          p.ID,
		Grid:        p.Grid.Cells,
		Constraints: p.Constraints,
		Difficulty:  p.Difficulty,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	diff := domain.ParseDifficulty(req.Difficulty)
	p, st, err := h.UC.Generate(c.Request.Context(), seed, diff)
	if err != nil {
		abort(c, err)
		return
	}
	generateTotal.WithLabelValues(string(diff)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"puzzle":     toResp(p),
		"seed":       seed,
		"durationMs": st.Duration.Milliseconds(),
		"nodes":      st.Nodes,
	})
}

func (h *Handler) list(c *gin.Context) {
	metas, err := h.UC.ListPuzzles(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"puzzles": metas})
}

func (h *Handler) getPuzzle(c *gin.Context) {
	p, err := h.UC.GetPuzzle(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"puzzle": toResp(p)})
}

type gridReq struct {
	PuzzleID string      `json:"puzzle_id"`
	Grid     domain.Grid `json:"grid"`
}

func (h *Handler) validate(c *gin.Context) {
	var req gridReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	vr, err := h.UC.Validate(c.Request.Context(), req.PuzzleID, req.Grid)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":         vr.Valid,
		"complete":      vr.Complete,
		"violations":    vr.Violations,
		"invalid_cells": vr.InvalidCells(),
	})
}

func (h *Handler) solve(c *gin.Context) {
	var req gridReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	sol, steps, st, err := h.UC.Solve(c.Request.Context(), req.PuzzleID, req.Grid)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"puzzle_id":  req.PuzzleID,
		"solution":   sol,
		"steps":      steps,
		"durationMs": st.Duration.Milliseconds(),
		"nodes":      st.Nodes,
	})
}

func (h *Handler) hint(c *gin.Context) {
	var req gridReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	res, err := h.UC.Hint(c.Request.Context(), req.PuzzleID, req.Grid)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) explain(c *gin.Context) {
	var req gridReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	steps, summary, err := h.UC.Explain(c.Request.Context(), req.PuzzleID, req.Grid)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": steps, "summary": summary})
}

func (h *Handler) check(c *gin.Context) {
	var req gridReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	solvable, unique, err := h.UC.Check(c.Request.Context(), req.PuzzleID, req.Grid)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"solvable": solvable, "unique": unique})
}
