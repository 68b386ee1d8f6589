package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	baselinex "github.com/greenmark-ai/greenmark/agent/baseline"
	memoryx "github.com/greenmark-ai/greenmark/agent/memory"
	orchestratorx "github.com/greenmark-ai/greenmark/agent/orchestrator"
	promptx "github.com/greenmark-ai/greenmark/agent/prompt"
	ragx "github.com/greenmark-ai/greenmark/agent/rag"
	reasonerx "github.com/greenmark-ai/greenmark/agent/reasoner"
	toolx "github.com/greenmark-ai/greenmark/agent/tool"
	configx "github.com/greenmark-ai/greenmark/pkg/config"
	_ "github.com/greenmark-ai/greenmark/pkg/logger/autoload"
	openrouterx "github.com/greenmark-ai/greenmark/pkg/openrouter"
)

type AppConfig struct {
	// MemoryBackend selects conversation persistence: memory, redis, or
	// postgres.
	MemoryBackend  string `envconfig:"MEMORY_BACKEND" split_words:"true" default:"memory"`
	SPARQLEndpoint string `envconfig:"SPARQL_ENDPOINT" split_words:"true"`
	RunBaseline    bool   `envconfig:"RUN_BASELINE" split_words:"true" default:"true"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("GREENMARK")

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	openRouterClient := openrouterx.NewClient(*openRouterCfg)
	if openRouterClient == nil {
		panic("failed to initialize openrouter client")
	}

	gateway := buildGateway(ctx, appCfg)
	reasoner := reasonerx.New(openRouterClient, *openRouterCfg, gateway)

	store := buildStore(ctx, appCfg)
	manager := memoryx.NewManager(store, memoryx.DefaultMaxPairs)

	orchestrator, err := orchestratorx.New(reasoner, manager, promptx.Strategist(), toolx.Catalog(), *configx.MustNew[orchestratorx.Config]("ORCHESTRATOR"))
	if err != nil {
		panic(err)
	}

	result := orchestrator.ProcessQuery(ctx, "test_user", "How can I market CBD products on Facebook without violating their policies?", nil)
	if result.Err != "" {
		log.Error().Str("error", result.Err).Msg("demo query failed")
	} else {
		log.Info().
			Str("user", result.UserID).
			Float64("confidence", result.Confidence).
			Int("tool_calls", len(result.Trace)).
			Msg(result.Response)
	}

	if appCfg.RunBaseline {
		runBaseline(ctx, orchestrator)
	}
}

func buildGateway(ctx context.Context, cfg *AppConfig) *toolx.Gateway {
	opts := []toolx.GatewayOption{}

	searcher, err := ragx.NewSearcher()
	if err != nil {
		panic(err)
	}
	if err := searcher.Seed(ctx, ragx.DefaultKnowledge()); err != nil {
		panic(err)
	}
	opts = append(opts, toolx.WithRetriever(searcher))

	cache, err := toolx.NewRistrettoCache()
	if err != nil {
		panic(err)
	}
	opts = append(opts, toolx.WithSearchCache(cache))

	if strings.TrimSpace(cfg.SPARQLEndpoint) != "" {
		sparqlClient, err := ragx.NewSPARQLClient(ragx.SPARQLConfig{Endpoint: cfg.SPARQLEndpoint})
		if err != nil {
			panic(err)
		}
		opts = append(opts, toolx.WithStructuredQuerier(sparqlClient))
	} else {
		log.Warn().Msg("structured knowledge endpoint not configured")
	}

	return toolx.NewGateway(opts...)
}

func buildStore(ctx context.Context, cfg *AppConfig) memoryx.Store {
	switch strings.ToLower(strings.TrimSpace(cfg.MemoryBackend)) {
	case "redis":
		store, err := memoryx.NewUpstashRedisStore(*configx.MustNew[memoryx.UpstashRedisConfig]("UPSTASH_REDIS"))
		if err != nil {
			panic(err)
		}
		return store
	case "postgres":
		store, err := memoryx.NewBunStore(*configx.MustNew[memoryx.BunConfig]("POSTGRES"))
		if err != nil {
			panic(err)
		}
		if err := store.Init(ctx); err != nil {
			panic(err)
		}
		return store
	default:
		return memoryx.NewInMemoryStore()
	}
}

func runBaseline(ctx context.Context, orchestrator *orchestratorx.Orchestrator) {
	questions, err := promptx.BaselineQuestions()
	if err != nil {
		panic(err)
	}
	scorer, err := baselinex.NewScorer(baselinex.DefaultScoringConfig())
	if err != nil {
		panic(err)
	}
	runner, err := baselinex.NewRunner(orchestrator, scorer, questions)
	if err != nil {
		panic(err)
	}

	report, err := runner.Run(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("baseline run failed")
		return
	}
	log.Info().
		Int("passed", report.Passed).
		Int("total", report.TotalQuestions).
		Float64("average_confidence", report.AverageConfidence).
		Msg("baseline run complete")
}
