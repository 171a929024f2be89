package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arpriyadarshi/ey-pharma/internal/model"
	"github.com/arpriyadarshi/ey-pharma/internal/pipeline"
)

var servePort int

// analyzeRunner is what the HTTP layer needs from the pipeline.
type analyzeRunner interface {
	Run(ctx context.Context, query string, docs []model.Document) (*pipeline.Result, error)
}

type analyzeRequest struct {
	Query     string           `json:"query"`
	Documents []model.Document `json:"documents"`
}

// newRouter builds the HTTP API around a runner.
func newRouter(runner analyzeRunner) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/analyze", func(w http.ResponseWriter, req *http.Request) {
		var body analyzeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Query == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
			return
		}

		result, err := runner.Run(req.Context(), body.Query, body.Documents)
		if err != nil {
			zap.L().Error("analysis request failed",
				zap.String("query", body.Query),
				zap.Error(err),
			)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "analysis failed"})
			return
		}

		writeJSON(w, http.StatusOK, result)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server for analysis requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, err := initPipeline()
		if err != nil {
			return eris.Wrap(err, "init pipeline")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(p),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
