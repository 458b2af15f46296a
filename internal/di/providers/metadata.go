package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"

	"github.com/cinelist/cinelist-server/internal/config"
	"github.com/cinelist/cinelist-server/internal/logger"
	"github.com/cinelist/cinelist-server/internal/metadata"
	"github.com/cinelist/cinelist-server/internal/metadata/tmdb"
	"github.com/cinelist/cinelist-server/internal/projection"
)

// ProvideRegistry provides the Prometheus registry shared by HTTP and catalog metrics.
func ProvideRegistry(i do.Injector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, nil
}

// ProvideMetadataProvider provides the TMDB client behind the response cache.
func ProvideMetadataProvider(i do.Injector) (metadata.Provider, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	reg := do.MustInvoke[*prometheus.Registry](i)

	if cfg.Metadata.APIKey == "" {
		log.Warn("TMDB_API_KEY is not set; catalog requests will fail")
	}

	client := tmdb.New(tmdb.Options{
		BaseURL:           cfg.Metadata.BaseURL,
		APIKey:            cfg.Metadata.APIKey,
		ImageBaseURL:      cfg.Metadata.ImageBaseURL,
		Timeout:           cfg.Metadata.Timeout,
		RequestsPerSecond: cfg.Metadata.RequestsPerSecond,
		RetryAttempts:     cfg.Metadata.RetryAttempts,
	}, log.Logger)

	log.Info("Metadata provider initialized",
		"base_url", cfg.Metadata.BaseURL,
		"cache_ttl", cfg.Metadata.CacheTTL,
	)

	return metadata.NewCachedProvider(client, cfg.Metadata.CacheTTL, metadata.NewMetrics(reg), log.Logger), nil
}

// ProvideResolver provides the bounded-concurrency list item resolver.
func ProvideResolver(i do.Injector) (*projection.Resolver, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	provider := do.MustInvoke[metadata.Provider](i)

	return projection.NewResolver(provider, cfg.Projection.Concurrency, log.Logger), nil
}

// ProvideProjector provides the list detail projector.
func ProvideProjector(i do.Injector) (*projection.Projector, error) {
	resolver := do.MustInvoke[*projection.Resolver](i)
	return projection.NewProjector(resolver, nil), nil
}
