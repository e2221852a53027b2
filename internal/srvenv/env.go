package srvenv

import (
	"net/http"

	"github.com/go-sod/quadtree/internal/config"
	"github.com/go-sod/quadtree/internal/knn"
)

type IndexProvideFn func(scenario config.Scenario) (knn.Index, error)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	scenarios []config.Scenario
	replicas  int
	index     IndexProvideFn
	exporter  http.Handler
}

func (s *SrvEnv) Scenarios() []config.Scenario {
	return s.scenarios
}

func (s *SrvEnv) Replicas() int {
	if s.replicas < 1 {
		return 1
	}
	return s.replicas
}

func (s *SrvEnv) ProvideIndex() IndexProvideFn {
	return s.index
}

// MetricsHandler is nil when no metrics address is configured.
func (s *SrvEnv) MetricsHandler() http.Handler {
	return s.exporter
}

func WithScenarios(scenarios []config.Scenario, replicas int) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.scenarios = scenarios
		s.replicas = replicas
		return s
	}
}

func WithIndex(fn IndexProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.index = fn
		return s
	}
}

func WithMetricsHandler(h http.Handler) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.exporter = h
		return s
	}
}
