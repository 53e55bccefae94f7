package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for lead generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := newRouter(env)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
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

// newRouter builds the HTTP API.
func newRouter(env *pipelineEnv) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/leads/generate", handleGenerate(env))
	r.Get("/api/runs", handleListRuns(env))
	r.Get("/api/runs/{runID}", handleGetRun(env))
	r.Get("/api/runs/{runID}/leads", handleListLeads(env))

	return r
}

// handleGenerate accepts a lead-generation request, creates a run, and
// processes it asynchronously. The response carries the run id for polling.
func handleGenerate(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Category        string `json:"category"`
			Location        string `json:"location"`
			Count           int    `json:"count"`
			AnalyzeWebsites *bool  `json:"analyze_websites"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Category == "" || body.Location == "" {
			writeError(w, http.StatusBadRequest, "category and location are required")
			return
		}

		icp := model.NewICP(body.Category, body.Location)
		if err := icp.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		analyze := cfg.Batch.AnalyzeWebsites
		if body.AnalyzeWebsites != nil {
			analyze = *body.AnalyzeWebsites
		}

		req := model.RunRequest{
			Category:        body.Category,
			Location:        body.Location,
			DesiredCount:    body.Count,
			AnalyzeWebsites: analyze,
			ICP:             icp,
		}

		run, err := env.Store.CreateRun(r.Context(), req)
		if err != nil {
			zap.L().Error("serve: create run failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create run")
			return
		}

		// Detached from the request context so the run survives the
		// client disconnecting.
		go func() {
			if _, err := processRun(context.Background(), env, run); err != nil {
				zap.L().Error("serve: run failed",
					zap.String("run_id", run.ID),
					zap.Error(err),
				)
			}
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{
			"run_id": run.ID,
			"status": string(model.RunStatusQueued),
		})
	}
}

func handleListRuns(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := env.Store.ListRuns(r.Context(), store.RunFilter{
			Status: model.RunStatus(r.URL.Query().Get("status")),
		})
		if err != nil {
			zap.L().Error("serve: list runs failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list runs")
			return
		}
		if runs == nil {
			runs = []model.Run{}
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

func handleGetRun(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := env.Store.GetRun(r.Context(), chi.URLParam(r, "runID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

func handleListLeads(env *pipelineEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads, err := env.Store.ListLeads(r.Context(), chi.URLParam(r, "runID"))
		if err != nil {
			zap.L().Error("serve: list leads failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list leads")
			return
		}
		if leads == nil {
			leads = []model.Lead{}
		}
		writeJSON(w, http.StatusOK, leads)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
