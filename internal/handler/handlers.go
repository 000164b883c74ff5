package handler

import (
	"github.com/trailhead-app/trailhead/internal/config"
	"github.com/trailhead-app/trailhead/internal/handler/http"
	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/service"
	"github.com/trailhead-app/trailhead/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, storages, cfg, logger),
	}
}
