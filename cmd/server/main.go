// Command server serves the portfolio state API.
package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/internal/bootstrap"
	"portfolio/internal/config"
	"portfolio/internal/middleware"
	"portfolio/internal/observability"
	"portfolio/internal/server"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	middleware.Logger = middleware.NewLogger(cfg.Env, os.Getenv("LOG_LEVEL"))

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "portfolio-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		log.Printf("Failed to initialize tracing: %v", err)
		return 1
	}

	rt, err := bootstrap.InitRuntime(context.Background(), cfg)
	if err != nil {
		log.Printf("Failed to initialize runtime: %v", err)
		_ = shutdownTracing(context.Background())
		return 1
	}

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		log.Printf("Failed to listen on port %s: %v", cfg.Port, err)
		_ = rt.Close()
		_ = shutdownTracing(context.Background())
		return 1
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Server starting on port %s (store: %s)...", cfg.Port, rt.Store.Name())
	if err := serve(server.NewServer(rt), ln, rt, shutdownTracing, sigChan); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	log.Println("Server stopped")
	return 0
}

// serve runs srv on ln until stop fires, then tears down in order: the HTTP
// server, the runtime (which drains background catalog fetches) and the
// span exporter. It returns only after all three are done.
func serve(
	srv *server.Server,
	ln net.Listener,
	rt *bootstrap.Runtime,
	shutdownTracing func(context.Context) error,
	stop <-chan os.Signal,
) error {
	go func() {
		<-stop
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	serveErr := srv.Serve(ln)

	if err := rt.Close(); err != nil {
		log.Printf("Runtime shutdown error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Tracing shutdown error: %v", err)
	}
	return serveErr
}
