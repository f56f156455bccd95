package repository

import (
	"context"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	otelAttrKey = "store.key"

	noExpiry = 0
)

type redisStore struct {
	cache cache.RedisCache
	key   string
	otel  otel.Otel
}

// NewRedisStore keeps the snapshot as one redis string that never expires.
func NewRedisStore(redisCache cache.RedisCache, key string, otel otel.Otel) Booking {
	return &redisStore{
		cache: redisCache,
		key:   key,
		otel:  otel,
	}
}

func (s *redisStore) Save(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".redis.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver:   "redis",
		otelAttrKey:      s.key,
		otelAttrBookings: len(bookings),
	})

	data, err := encodeSnapshot(bookings)
	if err != nil {
		return failure.Persistence(opSave, err)
	}

	if err = s.cache.Save(ctx, s.key, data, noExpiry); err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("failed to write booking snapshot to redis")

		return failure.Persistence(opSave, err)
	}

	return nil
}

func (s *redisStore) Load(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".redis.Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver: "redis",
		otelAttrKey:    s.key,
	})

	var data []byte

	err = s.cache.Get(ctx, s.key, &data)
	if cache.IsMiss(err) {
		log.Info().Str("key", s.key).Msg("no booking snapshot in redis, starting empty")

		return []model.Booking{}, nil
	}

	if err != nil {
		return nil, failure.Persistence(opLoad, err)
	}

	bookings, err = decodeSnapshot(data)
	if err != nil {
		return nil, failure.Persistence(opLoad, err)
	}

	return bookings, nil
}
