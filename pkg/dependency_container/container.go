package dependency_container

import (
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustScan/pkg/app/aggregator"
	"github.com/NeuralTrust/TrustScan/pkg/app/batch"
	"github.com/NeuralTrust/TrustScan/pkg/app/explainer"
	"github.com/NeuralTrust/TrustScan/pkg/app/extractor"
	"github.com/NeuralTrust/TrustScan/pkg/app/rules"
	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	"github.com/NeuralTrust/TrustScan/pkg/config"
	"github.com/NeuralTrust/TrustScan/pkg/domain/enrichment"
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
	handlers "github.com/NeuralTrust/TrustScan/pkg/handlers/http"
	"github.com/NeuralTrust/TrustScan/pkg/infra/cache"
	infraEnrichment "github.com/NeuralTrust/TrustScan/pkg/infra/enrichment"
	infraModel "github.com/NeuralTrust/TrustScan/pkg/infra/model"
	"github.com/NeuralTrust/TrustScan/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustScan/pkg/server/middleware"
	"github.com/NeuralTrust/TrustScan/pkg/server/router"
	"github.com/sirupsen/logrus"
)

const rateLimitWindow = time.Minute

type Container struct {
	Cache                  cache.Client
	EnrichmentProvider     enrichment.Provider
	Selector               scoring.Selector
	Scanner                scan.Scanner
	Orchestrator           batch.Orchestrator
	HandlerTransport       handlers.HandlerTransport
	PanicRecoverMiddleware middleware.Middleware
	RequestIDMiddleware    middleware.Middleware
	CORSMiddleware         middleware.Middleware
	MetricsMiddleware      middleware.Middleware
	RouteLimits            router.RouteLimits
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// ModelLoader overrides the artifact file loader, mainly for tests.
	ModelLoader model.Loader
	// Cache overrides the cache built from the redis section.
	Cache cache.Client
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg

	cacheInstance := di.Cache
	if cacheInstance == nil {
		var err error
		cacheInstance, err = newCache(cfg, di.Logger)
		if err != nil {
			return nil, err
		}
	}

	var provider enrichment.Provider
	if cfg.Enrichment.Enabled {
		provider = infraEnrichment.NewProvider(di.Logger, infraEnrichment.Config{
			Timeout:            cfg.Enrichment.Timeout,
			CacheTTL:           cfg.Enrichment.CacheTTL,
			BreakerMaxFailures: cfg.Enrichment.BreakerMaxFailures,
			BreakerTimeout:     cfg.Enrichment.BreakerTimeout,
			TLSPort:            cfg.Enrichment.TLSPort,
		}, cacheInstance)
	} else {
		di.Logger.Info("domain enrichment is disabled by configuration")
	}

	ruleSet, err := rules.NewSet(cfg.Scoring.RuleWeights, cfg.Scoring.HighWeightCutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule set: %w", err)
	}

	loader := di.ModelLoader
	if loader == nil {
		loader = infraModel.NewFileLoader(di.Logger)
	}
	selector := scoring.NewSelector(di.Logger, ruleSet, modelOptions(cfg, di.Logger, loader)...)

	exp := explainer.NewExplainer(explainer.Config{
		TopN:            cfg.Scoring.TopN,
		NoiseThreshold:  cfg.Scoring.NoiseThreshold,
		MaxExplanations: cfg.Scoring.MaxExplanations,
	}, ruleSet)
	agg := aggregator.NewAggregator(aggregator.Config{
		TopFeatures:    cfg.Scoring.TopFeatures,
		NoiseThreshold: cfg.Scoring.NoiseThreshold,
	}, exp.Describe)

	scanner := scan.NewScanner(
		di.Logger,
		scan.Config{
			MaxURLLength:      cfg.Server.MaxURLLength,
			EnrichmentTimeout: cfg.Enrichment.Timeout,
		},
		extractor.NewExtractor(),
		selector,
		exp,
		agg,
		provider,
	)
	orchestrator := batch.NewOrchestrator(di.Logger, batch.Config{
		MaxCount:    cfg.Batch.MaxCount,
		Concurrency: cfg.Batch.Concurrency,
		Timeout:     cfg.Batch.Timeout,
	}, scanner)

	handlerTransport := &handlers.HandlerTransportDTO{
		PredictHandler:      handlers.NewPredictHandler(di.Logger, scanner, cfg.Server.MaxURLLength),
		BatchPredictHandler: handlers.NewBatchPredictHandler(di.Logger, orchestrator),
		FeaturesHandler:     handlers.NewFeaturesHandler(di.Logger, scanner, cfg.Server.MaxURLLength),
		ModelInfoHandler:    handlers.NewModelInfoHandler(di.Logger, selector),
		HealthHandler:       handlers.NewHealthHandler(di.Logger, selector),
		GetVersionHandler:   handlers.NewGetVersionHandler(di.Logger),
	}

	var limits router.RouteLimits
	if cfg.RateLimit.Enabled {
		limits = router.RouteLimits{
			Predict:  middleware.NewRateLimitMiddleware(di.Logger, "predict", cfg.RateLimit.Predict, rateLimitWindow),
			Batch:    middleware.NewRateLimitMiddleware(di.Logger, "batch", cfg.RateLimit.Batch, rateLimitWindow),
			Features: middleware.NewRateLimitMiddleware(di.Logger, "features", cfg.RateLimit.Features, rateLimitWindow),
		}
	}

	var metricsMiddleware middleware.Middleware
	if cfg.Metrics.Enabled {
		metricsMiddleware = middleware.NewMetricsMiddleware()
	}

	return &Container{
		Cache:                  cacheInstance,
		EnrichmentProvider:     provider,
		Selector:               selector,
		Scanner:                scanner,
		Orchestrator:           orchestrator,
		HandlerTransport:       handlerTransport,
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		CORSMiddleware:         middleware.NewCORSMiddleware(cfg.CORS.AllowOrigins, cfg.CORS.AllowMethods, "600"),
		MetricsMiddleware:      metricsMiddleware,
		RouteLimits:            limits,
	}, nil
}

// MiddlewareTransport returns the global middlewares in the order they run.
func (c *Container) MiddlewareTransport() *middleware.Transport {
	return middleware.NewTransport(
		c.RequestIDMiddleware,
		c.PanicRecoverMiddleware,
		c.CORSMiddleware,
		c.MetricsMiddleware,
	)
}

func newCache(cfg *config.Config, logger *logrus.Logger) (cache.Client, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryClient(cfg.Redis.LocalTTL), nil
	}
	client, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
		LocalTTL: cfg.Redis.LocalTTL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return client, nil
}

func modelOptions(cfg *config.Config, logger *logrus.Logger, loader model.Loader) []scoring.SelectorOption {
	onFault := scoring.WithFaultHook(func(error) {
		prometheus.ModelFaultsTotal.Inc()
		prometheus.ModelServing.Set(0)
	})
	if cfg.Model.Path == "" {
		logger.Info("no model artifact configured, scoring with rules")
		prometheus.ModelServing.Set(0)
		return []scoring.SelectorOption{onFault}
	}

	artifact, err := loader.Load(cfg.Model.Path)
	if err != nil {
		logger.WithError(err).WithField("path", cfg.Model.Path).
			Error("failed to load model artifact, scoring with rules")
		prometheus.ModelServing.Set(0)
		return []scoring.SelectorOption{scoring.WithLoadError(err), onFault}
	}
	prometheus.ModelServing.Set(1)
	return []scoring.SelectorOption{scoring.WithArtifact(artifact), onFault}
}
