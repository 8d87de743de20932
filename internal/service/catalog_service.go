package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"portfolio/internal/catalog"
	"portfolio/internal/models"
	"portfolio/internal/observability"
	"portfolio/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// CuratedBootstrapper adopts a freshly fetched catalog as the curated
// collection when the latter is empty.
type CuratedBootstrapper interface {
	Bootstrap(ctx context.Context, projects []models.Project) (bool, error)
}

// FetchResult describes a catalog fetch that was written through.
type FetchResult struct {
	Generation   uint64           `json:"generation"`
	Username     string           `json:"username"`
	Projects     []models.Project `json:"projects"`
	Bootstrapped bool             `json:"bootstrapped"`
}

// CatalogService fetches the upstream catalog and writes it through to the
// store. Every fetch takes a generation number; only the latest generation
// may write, older results are discarded.
type CatalogService struct {
	fetcher   catalog.Fetcher
	catalog   repository.ProjectRepository
	profile   repository.ProfileRepository
	bootstrap CuratedBootstrapper
	logger    *slog.Logger

	generation atomic.Uint64
	writeMu    sync.Mutex
	wg         sync.WaitGroup
}

func NewCatalogService(
	fetcher catalog.Fetcher,
	catalogRepo repository.ProjectRepository,
	profileRepo repository.ProfileRepository,
	bootstrap CuratedBootstrapper,
	logger *slog.Logger,
) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		fetcher:   fetcher,
		catalog:   catalogRepo,
		profile:   profileRepo,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// FetchCatalog lists the user's repositories, overwrites the full catalog with
// the eligible ones and bootstraps the curated collection if it is empty.
func (s *CatalogService) FetchCatalog(ctx context.Context, username string) (*FetchResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	return s.fetch(ctx, username, s.generation.Add(1))
}

// FetchCatalogAsync starts a fetch in the background and returns its generation.
// The outcome is logged; callers observe it through the persisted collections.
func (s *CatalogService) FetchCatalogAsync(ctx context.Context, username string) (uint64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, models.NewValidationError("Username is required")
	}

	gen := s.generation.Add(1)
	ctx = context.WithoutCancel(ctx)
	if observability.ExtractCorrelationID(ctx) == "" {
		ctx = observability.WithCorrelationID(ctx, "catalog-fetch-"+strconv.FormatUint(gen, 10))
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.fetch(ctx, username, gen); err != nil {
			s.logger.WarnContext(ctx, "catalog fetch failed",
				slog.String("username", username),
				slog.Uint64("generation", gen),
				slog.String("error", err.Error()),
			)
		}
	}()
	return gen, nil
}

// Wait blocks until all background fetches have finished.
func (s *CatalogService) Wait() {
	s.wg.Wait()
}

// LatestGeneration returns the most recently issued generation.
func (s *CatalogService) LatestGeneration() uint64 {
	return s.generation.Load()
}

// ChangeUsername persists the trimmed username and starts a fetch for it.
func (s *CatalogService) ChangeUsername(ctx context.Context, username string) (uint64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, models.NewValidationError("Username is required")
	}
	if err := s.profile.SetUsername(ctx, username); err != nil {
		return 0, err
	}
	return s.FetchCatalogAsync(ctx, username)
}

// Refresh refetches the catalog for the stored username.
func (s *CatalogService) Refresh(ctx context.Context) (*FetchResult, error) {
	username, err := s.profile.Username(ctx)
	if err != nil {
		return nil, err
	}
	return s.FetchCatalog(ctx, username)
}

// Catalog returns the persisted full catalog.
func (s *CatalogService) Catalog(ctx context.Context) ([]models.Project, error) {
	return s.catalog.List(ctx)
}

func (s *CatalogService) fetch(ctx context.Context, username string, gen uint64) (*FetchResult, error) {
	span, ctx := observability.NewSpan(ctx, "catalog.fetch",
		attribute.String("catalog.username", username),
		attribute.Int64("catalog.generation", int64(gen)),
	)
	defer span.End()

	fail := func(outcome string, err error) (*FetchResult, error) {
		observability.CatalogFetches.WithLabelValues(outcome).Inc()
		span.AddAttributes(attribute.String("catalog.outcome", outcome))
		span.SetError(err)
		return nil, err
	}

	raw, err := s.fetcher.ListRepositories(ctx, username)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return fail("not_found", err)
		}
		return fail("failed", err)
	}
	projects := catalog.Curate(raw)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if latest := s.generation.Load(); gen != latest {
		return fail("stale", models.NewStaleResultError(gen, latest))
	}

	// The catalog and the curated collection are separate keys. A bootstrap
	// failure leaves the new catalog in place; the next fetch retries it.
	if err := s.catalog.Replace(ctx, projects); err != nil {
		return fail("failed", err)
	}
	bootstrapped, err := s.bootstrap.Bootstrap(ctx, projects)
	if err != nil {
		return fail("failed", err)
	}

	observability.CatalogFetches.WithLabelValues("ok").Inc()
	span.AddAttributes(
		attribute.String("catalog.outcome", "ok"),
		attribute.Int("catalog.projects", len(projects)),
		attribute.Bool("catalog.bootstrapped", bootstrapped),
	)
	s.logger.InfoContext(ctx, "catalog fetched",
		slog.String("username", username),
		slog.Uint64("generation", gen),
		slog.Int("projects", len(projects)),
		slog.Bool("bootstrapped", bootstrapped),
	)

	return &FetchResult{
		Generation:   gen,
		Username:     username,
		Projects:     projects,
		Bootstrapped: bootstrapped,
	}, nil
}
