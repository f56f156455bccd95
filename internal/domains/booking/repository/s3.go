package repository

import (
	"context"
	"errors"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

type s3Store struct {
	objects s3.S3
	key     string
	otel    otel.Otel
}

// NewS3Store keeps the snapshot as a single object. PutObject replaces it in one request.
func NewS3Store(objects s3.S3, key string, otel otel.Otel) Booking {
	return &s3Store{
		objects: objects,
		key:     key,
		otel:    otel,
	}
}

func (s *s3Store) Save(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".s3.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver:   "s3",
		otelAttrKey:      s.key,
		otelAttrBookings: len(bookings),
	})

	data, err := encodeSnapshot(bookings)
	if err != nil {
		return failure.Persistence(opSave, err)
	}

	if err = s.objects.PutObject(ctx, s.key, snapshotContentType, data); err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("failed to upload booking snapshot")

		return failure.Persistence(opSave, err)
	}

	return nil
}

func (s *s3Store) Load(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".s3.Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver: "s3",
		otelAttrKey:    s.key,
	})

	data, err := s.objects.GetObject(ctx, s.key)
	if errors.Is(err, s3.ErrObjectNotFound) {
		log.Info().Str("key", s.key).Msg("no booking snapshot in bucket, starting empty")

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
