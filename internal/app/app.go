// Package app wires adapters and use cases together for the binaries.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"slack-archiver/internal/adapters/cache"
	"slack-archiver/internal/adapters/slackapi"
	"slack-archiver/internal/adapters/storage"
	"slack-archiver/internal/config"
	"slack-archiver/internal/domain"
	"slack-archiver/internal/metrics"
	"slack-archiver/internal/usecases"
)

// App holds the wired use cases and the resources that must be released.
type App struct {
	Connector *slackapi.Connector
	Metrics   *metrics.Collector
	Retrieve  *usecases.RetrieveConversationUseCase
	Archive   *usecases.ArchiveConversationUseCase
	Download  *usecases.DownloadFilesUseCase

	httpClient *http.Client
	cache      *cache.MemoryCache
	store      storage.Store
}

// New builds the application graph. reg receives the metrics.
func New(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*App, error) {
	store, err := storage.NewStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive store: %w", err)
	}

	collector := metrics.NewCollector(reg)
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	sender := slackapi.WithObserver(slackapi.NewHTTPSender(httpClient), collector)
	connector := slackapi.NewConnector(cfg.SlackAPIBase, sender)

	connect := func(creds domain.Credentials) usecases.SlackAPI { return connector.Connect(creds) }
	connectFiles := func(creds domain.Credentials) usecases.FileFetcher { return connector.Connect(creds) }

	memCache := cache.NewMemoryCache(cfg.CacheTTL)
	retrieve := usecases.NewRetrieveConversationUseCase(connect, collector)

	return &App{
		Connector:  connector,
		Metrics:    collector,
		Retrieve:   retrieve,
		Archive:    usecases.NewArchiveConversationUseCase(memCache, retrieve, store, collector),
		Download:   usecases.NewDownloadFilesUseCase(connectFiles, store),
		httpClient: httpClient,
		cache:      memCache,
		store:      store,
	}, nil
}

// VerifyCredentials calls auth.test with the application's HTTP client.
func (a *App) VerifyCredentials(ctx context.Context, creds domain.Credentials) (*slackapi.Identity, error) {
	return a.Connector.VerifyCredentials(ctx, creds, a.httpClient)
}

// Location reports where name is stored.
func (a *App) Location(name string) string {
	return a.store.Location(name)
}

// Close releases the cache sweeper and the store.
func (a *App) Close() error {
	a.cache.Close()
	return a.store.Close()
}
