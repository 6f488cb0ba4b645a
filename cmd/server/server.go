package main

import (
	"context"
	"time"

	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/internal/infrastructure"
)

const domainLoadTimeout = 30 * time.Second

// Server owns the infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

// NewServer builds every system. Catalog and label artifacts are loaded here,
// so a missing artifact stops the process before it listens.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), domainLoadTimeout)
	defer cancel()

	modules, err := NewModules(ctx, infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"heritage initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start registers lifecycle hooks and begins listening.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		if err := s.infra.Lifecycle.Err(); err != nil {
			s.infra.Logger.Error("startup incomplete", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown cancels the lifecycle and waits for shutdown hooks up to timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
