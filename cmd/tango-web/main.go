package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpadapter "github.com/JasonAgung/tango-puzzle/internal/adapters/http"
	"github.com/JasonAgung/tango-puzzle/internal/config"
	"github.com/JasonAgung/tango-puzzle/internal/domain"
	"github.com/JasonAgung/tango-puzzle/internal/generator"
	"github.com/JasonAgung/tango-puzzle/internal/hint"
	"github.com/JasonAgung/tango-puzzle/internal/infrastructure/storage"
	"github.com/JasonAgung/tango-puzzle/internal/solver"
	"github.com/JasonAgung/tango-puzzle/internal/usecase"
	"github.com/JasonAgung/tango-puzzle/internal/validator"
)

var (
	logLevel   string
	addr       string
	configPath string
	difficulty string
	seed       int64
)

func newLogger() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func loadConfig(logger *slog.Logger) *config.Config {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("config load failed", "path", configPath, "err", err)
		os.Exit(1)
	}
	return cfg
}

func buildService(cfg *config.Config) *usecase.Service {
	s := solver.New()
	return usecase.NewService(
		s,
		generator.New(s, cfg),
		validator.New(),
		hint.New(s),
		storage.NewMemory(),
	)
}

func main() {
	root := &cobra.Command{
		Use:   "tango-web",
		Short: "Tango puzzle engine and API server",
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config overriding difficulty bands")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the puzzle API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			uc := buildService(loadConfig(logger))

			gin.SetMode(gin.ReleaseMode)
			r := gin.New()
			r.Use(gin.Recovery())
			httpadapter.New(uc, logger).Register(r)

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Info("listening", "addr", addr)
			return srv.ListenAndServe()
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one puzzle and print it as JSON (solution included)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			uc := buildService(loadConfig(logger))

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			diff := domain.ParseDifficulty(difficulty)
			p, st, err := uc.Generate(cmd.Context(), seed, diff)
			if err != nil {
				return err
			}
			logger.Info("generated", "id", p.ID, "difficulty", diff, "seed", seed,
				"givens", domain.Size*domain.Size-p.Grid.EmptyCount(), "edges", len(p.Constraints),
				"nodes", st.Nodes, "dur", st.Duration.Round(time.Millisecond))

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"puzzle":   p,
				"solution": p.Solution,
			})
		},
	}
	generateCmd.Flags().StringVar(&difficulty, "difficulty", "medium", "easy|medium|hard")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	root.AddCommand(serveCmd, generateCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
