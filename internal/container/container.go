package container

import (
	"context"

	"jub/client/client"
	"jub/client/internal/config"
	"jub/client/internal/service"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.JubClient
	Service *service.Service
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	jubClient := client.New(client.Config{
		Hostname:             cfg.API.Hostname,
		Port:                 cfg.API.Port,
		BaseURL:              cfg.API.BaseURL,
		Timeout:              cfg.Client.Timeout,
		MaxRequestsPerSecond: cfg.Client.MaxRequestsPerSecond,
		IDAlphabet:           cfg.Client.IDAlphabet,
		IDSize:               cfg.Client.IDSize,
	})

	return &Container{
		Config:  cfg,
		Client:  jubClient,
		Service: service.NewService(jubClient, cfg.Seed.CatalogDir, cfg.Seed.ObservatoryTitle),
	}, nil
}

// Run executes the catalog seeding flow
func (c *Container) Run(ctx context.Context) error {
	return c.Service.SeedObservatory(ctx)
}
