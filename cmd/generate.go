package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/internal/pipeline"
)

var (
	genCategory  string
	genLocation  string
	genCount     int
	genNoAnalyze bool
	genICPFile   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Search for businesses and generate scored leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		icp, err := buildICP()
		if err != nil {
			return err
		}

		req := model.RunRequest{
			Category:        genCategory,
			Location:        genLocation,
			DesiredCount:    genCount,
			AnalyzeWebsites: !genNoAnalyze,
			ICP:             *icp,
		}

		result, err := executeRun(ctx, env, req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "encode result")
	},
}

func init() {
	generateCmd.Flags().StringVar(&genCategory, "category", "", "business category to target (required)")
	generateCmd.Flags().StringVar(&genLocation, "location", "", "location to search, e.g. \"Austin, TX\" (required)")
	generateCmd.Flags().IntVar(&genCount, "count", 0, "max leads to generate (default from config)")
	generateCmd.Flags().BoolVar(&genNoAnalyze, "no-analyze", false, "skip website analysis")
	generateCmd.Flags().StringVar(&genICPFile, "icp", "", "path to an ICP profile YAML file")
	_ = generateCmd.MarkFlagRequired("category")
	_ = generateCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(generateCmd)
}

// buildICP loads the profile file when given, otherwise derives the ICP
// from the category/location flags.
func buildICP() (*model.IdealCustomerProfile, error) {
	if genICPFile != "" {
		return model.LoadICP(genICPFile)
	}
	icp := model.NewICP(genCategory, genLocation)
	if err := icp.Validate(); err != nil {
		return nil, err
	}
	return &icp, nil
}

// executeRun performs one full lead-generation run: persist the run,
// search, enrich, save leads, and finalize run status.
func executeRun(ctx context.Context, env *pipelineEnv, req model.RunRequest) (*model.LeadBatchResult, error) {
	run, err := env.Store.CreateRun(ctx, req)
	if err != nil {
		return nil, err
	}
	return processRun(ctx, env, run)
}

// processRun drives an already-created run through search, enrichment,
// and persistence, updating run status as it goes.
func processRun(ctx context.Context, env *pipelineEnv, run *model.Run) (*model.LeadBatchResult, error) {
	req := run.Request
	desiredCount := req.DesiredCount
	if desiredCount <= 0 {
		desiredCount = cfg.Batch.DesiredCount
	}
	log := zap.L().With(zap.String("run_id", run.ID))

	if err := env.Store.UpdateRunStatus(ctx, run.ID, model.RunStatusSearching); err != nil {
		return nil, err
	}

	// Over-fetch so low scorers can be truncated after ranking.
	searchLimit := desiredCount * 2
	candidates, err := env.Search.Search(ctx, req.Category, req.Location, searchLimit)
	if err != nil {
		if fErr := env.Store.FailRun(ctx, run.ID, err.Error()); fErr != nil {
			log.Warn("failed to mark run failed", zap.Error(fErr))
		}
		return nil, eris.Wrap(err, "search businesses")
	}
	if len(candidates) == 0 {
		if err := env.Store.CompleteRun(ctx, run.ID, &model.BatchSummary{}); err != nil {
			log.Warn("failed to complete empty run", zap.Error(err))
		}
		log.Info("no businesses found",
			zap.String("category", req.Category),
			zap.String("location", req.Location),
		)
		return &model.LeadBatchResult{Leads: []model.Lead{}}, nil
	}

	if err := env.Store.UpdateRunStatus(ctx, run.ID, model.RunStatusEnriching); err != nil {
		return nil, err
	}

	result, err := env.Runner.RunBatch(ctx, candidates, req.ICP, pipeline.Options{
		AnalyzeWebsites:   req.AnalyzeWebsites,
		DesiredCount:      desiredCount,
		BatchSize:         cfg.Batch.Size,
		QualifiedMinScore: cfg.Scorer.QualifiedMinScore,
	})
	if err != nil {
		if fErr := env.Store.FailRun(ctx, run.ID, err.Error()); fErr != nil {
			log.Warn("failed to mark run failed", zap.Error(fErr))
		}
		return nil, eris.Wrap(err, "run batch")
	}

	if err := env.Store.SaveLeads(ctx, run.ID, result.Leads); err != nil {
		return nil, eris.Wrap(err, "save leads")
	}
	if err := env.Store.CompleteRun(ctx, run.ID, &result.Summary); err != nil {
		return nil, eris.Wrap(err, "complete run")
	}

	log.Info("lead generation complete",
		zap.Int("total_found", result.Summary.TotalFound),
		zap.Int("returned", result.Summary.Returned),
		zap.Int("qualified", result.Summary.Qualified),
		zap.Float64("avg_score", result.Summary.AvgScore),
	)
	return result, nil
}
