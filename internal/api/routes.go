package api

import (
	"fmt"
	"net/http"

	"github.com/termsight/termsight/internal/config"
	"github.com/termsight/termsight/pkg/openapi"
	"github.com/termsight/termsight/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	storage := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
	)

	validation := routes.Group{
		Prefix: "/validation",
		Children: []routes.Group{
			domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
			domain.Trades.Handler().Routes(),
			domain.Templates.Handler().Routes(),
			domain.Sessions.Handler().Routes(),
		},
	}

	routes.Register(mux, validation, storage.routes())

	specBytes, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
