// Package bootstrap wires the store, repositories and services for the cmd binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/cache"
	"portfolio/internal/catalog"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/featureflags"
	"portfolio/internal/middleware"
	"portfolio/internal/repository"
	"portfolio/internal/service"
	"portfolio/internal/store"
)

// Runtime holds the initialized services of one process.
type Runtime struct {
	Config    *config.Config
	Store     store.Store
	Flags     *featureflags.Manager
	Profile   *service.ProfileService
	Catalog   *service.CatalogService
	Selection *service.SelectionService
	Comments  *service.CommentService

	closers []func() error
}

// InitRuntime opens the configured store and wires the services around it.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	s, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	fetcher := catalog.NewClient(catalog.ClientConfig{
		BaseURL:       cfg.GitHubAPIURL,
		Token:         cfg.GitHubToken,
		PageSize:      cfg.CatalogPageSize,
		Timeout:       time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		RatePerMinute: cfg.FetchRatePerMinute,
	})

	rt, err := NewRuntime(ctx, cfg, s, fetcher)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	rt.closers = append(rt.closers, closeStore)
	return rt, nil
}

// NewRuntime wires services over an already opened store and upstream fetcher.
func NewRuntime(ctx context.Context, cfg *config.Config, s store.Store, fetcher catalog.Fetcher) (*Runtime, error) {
	s = store.Instrument(s, middleware.Logger)
	flags := featureflags.NewManager(cfg.FeatureFlags)

	curatedRepo := repository.NewCuratedRepository(s)
	catalogRepo := repository.NewCatalogRepository(s)
	profileRepo := repository.NewProfileRepository(s)
	commentRepo := repository.NewCommentRepository(s)

	newID := service.NewUUIDGenerator()
	if flags.Enabled(featureflags.LegacyCommentIDs, "") {
		newID = service.NewLegacyIDGenerator(nil)
	}

	selection := service.NewSelectionService(curatedRepo, catalogRepo)
	if err := selection.Sync(ctx); err != nil {
		return nil, fmt.Errorf("load curated projects: %w", err)
	}

	return &Runtime{
		Config:    cfg,
		Store:     s,
		Flags:     flags,
		Profile:   service.NewProfileService(profileRepo),
		Catalog:   service.NewCatalogService(fetcher, catalogRepo, profileRepo, selection, middleware.Logger),
		Selection: selection,
		Comments:  service.NewCommentService(commentRepo, newID),
	}, nil
}

// OpenStore opens the backend selected by STORE_DRIVER. The returned function
// releases its connections.
func OpenStore(cfg *config.Config) (store.Store, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLStore(db, cfg.StoreKeyPrefix), sqlDB.Close, nil
	case config.DriverRedis:
		client, err := cache.InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		rs := store.NewRedisStore(client, cfg.StoreKeyPrefix)
		return rs, rs.Close, nil
	case config.DriverMemory:
		return store.NewMemoryStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close waits for background fetches and releases the store.
func (r *Runtime) Close() error {
	r.Catalog.Wait()
	var errs []error
	for _, closeFn := range r.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}
