// Package catalog fetches a user's repository listing from the GitHub REST API
// and normalizes it into portfolio projects.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/observability"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// MaxPageSize is the upper bound of the single listing request.
const MaxPageSize = 50

// RawRepository is the subset of an upstream repository record the mapping uses.
type RawRepository struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	HTMLURL         string     `json:"html_url"`
	Homepage        *string    `json:"homepage"`
	Topics          []string   `json:"topics"`
	Language        *string    `json:"language"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	UpdatedAt       *time.Time `json:"updated_at"`
	Fork            bool       `json:"fork"`
	Archived        bool       `json:"archived"`
}

// Fetcher lists a user's repositories, most recently updated first.
type Fetcher interface {
	ListRepositories(ctx context.Context, username string) ([]RawRepository, error)
}

// ClientConfig configures the upstream client.
type ClientConfig struct {
	BaseURL       string
	Token         string
	PageSize      int
	Timeout       time.Duration
	RatePerMinute int
	UserAgent     string
}

// Client talks to the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	pageSize   int
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a Client. Page size is clamped to 1..MaxPageSize.
func NewClient(cfg ClientConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "portfolio-sync"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		userAgent:  userAgent,
		pageSize:   pageSize,
		limiter:    rate.NewLimiter(limit, 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "github",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			},
			// A missing user is an answer, not an outage.
			IsSuccessful: func(err error) bool {
				return err == nil || models.IsCode(err, models.CodeNotFound)
			},
		}),
	}
}

// ListRepositories performs one bounded listing request. A 404 yields a
// NOT_FOUND AppError; every other failure yields FETCH_FAILED.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]RawRepository, error) {
	ctx, span := observability.TraceUpstreamCall(ctx, "github", "ListRepositories")
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return nil, models.NewFetchFailedError(err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.list(ctx, username)
	})
	if err != nil {
		span.RecordError(err)
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewFetchFailedError(err)
	}
	return result.([]RawRepository), nil
}

func (c *Client) list(ctx context.Context, username string) ([]RawRepository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d",
		c.baseURL, url.PathEscape(username), c.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewFetchFailedError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewFetchFailedError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, models.NewNotFoundError("GitHub user", username)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, models.NewFetchFailedError(fmt.Errorf("github status: %d", resp.StatusCode))
	}

	var repos []RawRepository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, models.NewFetchFailedError(fmt.Errorf("decode repositories: %w", err))
	}
	return repos, nil
}
