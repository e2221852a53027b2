package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/quadtree/internal/buildinfo"
	"github.com/go-sod/quadtree/internal/config"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/server"
	"github.com/go-sod/quadtree/internal/setup"
	"github.com/go-sod/quadtree/internal/shutdown"
	"github.com/go-sod/quadtree/internal/workload"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	defer done()

	logger := logging.NewLoggerFromEnv()
	ctx = logging.WithLogger(ctx, logger)
	if err := run(ctx); err != nil {
		done()
		logger.Fatal(err)
	}
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	cfg := config.Config{}
	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	if h := env.MetricsHandler(); h != nil {
		srv, err := server.New(cfg.MetricsAddr)
		if err != nil {
			return fmt.Errorf("server.New: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", h)
		mux.Handle("/health", server.HandleHealth(ctx))
		go func() {
			if err := srv.ServeHTTPHandler(ctx, mux); err != nil {
				logger.Errorf("metrics server: %v", err)
			}
		}()
		logger.Infof("serving metrics on %s", srv.Addr())
	}

	results, err := workload.RunAll(ctx, env.Scenarios(), env.Replicas(), env.ProvideIndex())
	for _, res := range results {
		if res.Scenario == "" {
			continue
		}
		_, _ = fmt.Fprintln(os.Stdout, res)
	}
	if err != nil {
		return fmt.Errorf("workload.RunAll: %w", err)
	}
	return nil
}
