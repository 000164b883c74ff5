package store

import (
	"github.com/trailhead-app/trailhead/internal/config"
	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/models"
)

// Storages bundles every repository the application layer depends on.
type Storages struct {
	UserRepository    UserRepository
	TourRepository    ResourceRepository[models.Tour]
	ReviewRepository  ResourceRepository[models.Review]
	BookingRepository ResourceRepository[models.Booking]
	AccountRepository ResourceRepository[models.User]
}

// NewStorages wires all repositories onto one database connection, with
// pagination bounds taken from configuration.
func NewStorages(db *DB, cfg *config.StructuredConfig, logger *logger.Logger) *Storages {
	defaultLimit, maxLimit := cfg.App.DefaultPageLimit, cfg.App.MaxPageLimit

	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		TourRepository:    NewResourceRepository(db, TourResource(defaultLimit, maxLimit), logger),
		ReviewRepository:  NewResourceRepository(db, ReviewResource(defaultLimit, maxLimit), logger),
		BookingRepository: NewResourceRepository(db, BookingResource(defaultLimit, maxLimit), logger),
		AccountRepository: NewResourceRepository(db, AccountResource(defaultLimit, maxLimit), logger),
	}
}
