package http

import (
	"github.com/trailhead-app/trailhead/internal/config"
	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/service"
	"github.com/trailhead-app/trailhead/internal/store"
)

type Handler struct {
	services *service.Services
	storages *store.Storages
	cfg      *config.StructuredConfig

	logger *logger.Logger
}

func NewHandler(services *service.Services, storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		storages: storages,
		cfg:      cfg,
		logger:   logger,
	}
}
