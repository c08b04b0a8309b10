package api

import (
	"time"

	"github.com/termsight/termsight/internal/config"
	"github.com/termsight/termsight/internal/infrastructure"
	"github.com/termsight/termsight/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination        pagination.Config
	ValidationTimeout time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Registry:  infra.Registry,
		},
		Pagination:        cfg.API.Pagination,
		ValidationTimeout: cfg.Engine.ValidationTimeoutDuration(),
	}
}
