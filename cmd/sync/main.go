// Command sync fetches the repository catalog once and writes it to the store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"portfolio/internal/bootstrap"
	"portfolio/internal/config"
	"portfolio/internal/middleware"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

// run returns instead of exiting so the deferred runtime close always runs.
func run() int {
	username := flag.String("username", "", "GitHub username (defaults to the stored one, then DEFAULT_USERNAME)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	middleware.Logger = middleware.NewLogger(cfg.Env, os.Getenv("LOG_LEVEL"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rt, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		log.Printf("Failed to initialize runtime: %v", err)
		return 1
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Printf("Runtime shutdown error: %v", err)
		}
	}()

	if err := syncCatalog(ctx, rt, *username, cfg.DefaultUsername, os.Stdout); err != nil {
		log.Printf("Catalog sync failed: %v", err)
		return 1
	}
	return 0
}

// syncCatalog fetches for name, falling back to the stored username and then
// to fallback, and writes a one-line summary to out.
func syncCatalog(ctx context.Context, rt *bootstrap.Runtime, name, fallback string, out io.Writer) error {
	if name == "" {
		stored, err := rt.Profile.Username(ctx)
		if err != nil {
			return fmt.Errorf("read stored username: %w", err)
		}
		name = stored
	}
	if name == "" {
		name = fallback
	}

	result, err := rt.Catalog.FetchCatalog(ctx, name)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "synced %d projects for %s (generation %d, curated bootstrapped: %t)\n",
		len(result.Projects), result.Username, result.Generation, result.Bootstrapped)
	return err
}
