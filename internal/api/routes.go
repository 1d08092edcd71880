package api

import (
	"net/http"

	"github.com/shellac-studio/shellac/internal/config"
	"github.com/shellac-studio/shellac/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	assetHandler := domain.Assets.Handler(cfg.API.MaxUploadSizeBytes())

	routes.Register(
		mux,
		assetHandler.Routes(),
		assetHandler.ProcessRoutes(),
		domain.Magnets.Handler().Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger).routes(),
	)
}
