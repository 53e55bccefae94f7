package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/anything-labs/leadgen-cli/internal/analyzer"
	"github.com/anything-labs/leadgen-cli/internal/enrich"
	"github.com/anything-labs/leadgen-cli/internal/pipeline"
	"github.com/anything-labs/leadgen-cli/internal/resilience"
	"github.com/anything-labs/leadgen-cli/internal/search"
	"github.com/anything-labs/leadgen-cli/internal/store"
	"github.com/anything-labs/leadgen-cli/pkg/serpapi"
	"github.com/anything-labs/leadgen-cli/pkg/tavily"
)

// pipelineEnv holds the initialized store, source chain, and batch runner
// shared by the generate/serve commands.
type pipelineEnv struct {
	Store  store.Store
	Search *search.Chain
	Runner *pipeline.Runner
}

// Close releases resources held by the environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline sets up the store, provider clients, analyzer, and runner.
// Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	chain := initSearchChain()

	httpAnalyzer := analyzer.NewHTTPAnalyzer(
		analyzer.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Analyzer.TimeoutSecs) * time.Second,
		}),
		analyzer.WithRatePerHost(cfg.Analyzer.RatePerHost),
	)

	enricher := enrich.NewEnricher(httpAnalyzer)
	runner := pipeline.NewRunner(enricher)

	return &pipelineEnv{
		Store:  st,
		Search: chain,
		Runner: runner,
	}, nil
}

// initSearchChain wires the primary and fallback business sources.
func initSearchChain() *search.Chain {
	retryCfg := resilience.DefaultRetryConfig()
	if cfg.Search.Retries > 0 {
		retryCfg.MaxAttempts = cfg.Search.Retries
	}

	var sources []search.Source
	if cfg.SerpAPI.Key != "" {
		var opts []serpapi.Option
		if cfg.SerpAPI.BaseURL != "" {
			opts = append(opts, serpapi.WithBaseURL(cfg.SerpAPI.BaseURL))
		}
		sources = append(sources, search.NewSerpAPISource(serpapi.New(cfg.SerpAPI.Key, opts...)))
	}
	if cfg.Tavily.Key != "" {
		var opts []tavily.Option
		if cfg.Tavily.BaseURL != "" {
			opts = append(opts, tavily.WithBaseURL(cfg.Tavily.BaseURL))
		}
		sources = append(sources, search.NewTavilySource(tavily.New(cfg.Tavily.Key, opts...)))
	}
	return search.NewChain(retryCfg, sources...)
}

// initStore creates the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "init postgres store")
		}
		return st, nil
	case "sqlite", "":
		st, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "init sqlite store")
		}
		return st, nil
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
