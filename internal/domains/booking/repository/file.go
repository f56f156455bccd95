package repository

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	fileStoreDirPerm = 0o755
	otelAttrPath     = "store.path"
)

type fileStore struct {
	path string
	otel otel.Otel
}

// NewFileStore keeps the snapshot in a local JSON file, replaced atomically on every save.
func NewFileStore(path string, otel otel.Otel) Booking {
	return &fileStore{
		path: path,
		otel: otel,
	}
}

func (s *fileStore) Save(ctx context.Context, bookings []model.Booking) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".file.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver:   "file",
		otelAttrPath:     s.path,
		otelAttrBookings: len(bookings),
	})

	data, err := encodeSnapshot(bookings)
	if err != nil {
		return failure.Persistence(opSave, err)
	}

	if err = s.writeAtomic(data); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("failed to write booking snapshot")

		return failure.Persistence(opSave, err)
	}

	return nil
}

func (s *fileStore) Load(ctx context.Context) (bookings []model.Booking, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".file.Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver: "file",
		otelAttrPath:   s.path,
	})

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", s.path).Msg("no booking snapshot found, starting empty")

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

// writeAtomic writes to a temp file in the target directory and renames it over the
// snapshot, so a crash leaves either the old or the new snapshot intact.
func (s *fileStore) writeAtomic(data []byte) (err error) {
	dir := filepath.Dir(s.path)

	if err = os.MkdirAll(dir, fileStoreDirPerm); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing temp snapshot: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("syncing temp snapshot: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}
