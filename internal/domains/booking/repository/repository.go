package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/s3"
	"hotel/internal/domains/booking/model"
	"hotel/shared/cache"

	"github.com/rs/zerolog/log"
)

const (
	opLoad = "load"
	opSave = "save"

	otelAttrDriver   = "store.driver"
	otelAttrBookings = "store.bookings"
)

// Booking persists the whole ledger as one snapshot.
type Booking interface {
	// Save replaces the stored snapshot with bookings.
	Save(ctx context.Context, bookings []model.Booking) error
	// Load returns the stored snapshot, or nothing when none was saved yet.
	// Unreadable or corrupt snapshots yield a *failure.PersistenceError.
	Load(ctx context.Context) ([]model.Booking, error)
}

// New builds the store selected by STORE_DRIVER.
func New(cfg *config.Config, redisCache cache.RedisCache, objects s3.S3, otel otel.Otel) (Booking, error) {
	log.Info().Str("driver", cfg.Store.Driver).Msg("Initializing booking store")

	switch cfg.Store.Driver {
	case config.StoreDriverFile:
		return NewFileStore(cfg.Store.FilePath, otel), nil
	case config.StoreDriverRedis:
		return NewRedisStore(redisCache, cfg.Store.Key, otel), nil
	case config.StoreDriverS3:
		return NewS3Store(objects, cfg.Store.Key, otel), nil
	case config.StoreDriverPostgres:
		if cfg.DB.Postgres.AutoMigrate {
			if err := helper.Up(cfg); err != nil {
				return nil, fmt.Errorf("migrating booking store: %w", err)
			}
		}

		conn, err := postgres.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connecting booking store: %w", err)
		}

		return NewPostgresStore(conn, otel), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
