package setup

import (
	"context"
	"fmt"

	"github.com/go-sod/quadtree/internal/config"
	"github.com/go-sod/quadtree/internal/knn"
	"github.com/go-sod/quadtree/internal/logging"
	"github.com/go-sod/quadtree/internal/metrics"
	"github.com/go-sod/quadtree/internal/srvenv"
	"github.com/kelseyhightower/envconfig"
)

// Setup reads the environment into cfg, loads the scenarios and wires the
// index provider and metrics exporter.
func Setup(ctx context.Context, cfg *config.Config) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	logger.Info("Configuring scenarios")
	if err := cfg.LoadScenarios(); err != nil {
		return nil, fmt.Errorf("unable to load scenarios: %w", err)
	}
	serverEnvOpts = append(serverEnvOpts, srvenv.WithScenarios(cfg.Scenarios, cfg.Replicas))

	logger.Info("Configuring metrics")
	if err := metrics.Register(); err != nil {
		return nil, fmt.Errorf("unable to register metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		exporter, err := metrics.NewExporter()
		if err != nil {
			return nil, fmt.Errorf("unable to create metrics exporter: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithMetricsHandler(exporter))
	}

	serverEnvOpts = append(serverEnvOpts, srvenv.WithIndex(ProvideIndexFor(ctx)))
	return srvenv.New(serverEnvOpts...), nil
}

func ProvideIndexFor(ctx context.Context) srvenv.IndexProvideFn {
	logger := logging.FromContext(ctx)
	return func(scenario config.Scenario) (knn.Index, error) {
		universe, err := scenario.Universe()
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		idx, err := knn.IndexFor(scenario.Alg, knn.Config{
			Universe:   universe,
			BucketSize: scenario.BucketSize,
			MaxDepth:   scenario.MaxDepth,
			Logger:     logger.With("scenario", scenario.Name),
		})
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		return idx, nil
	}
}
