package repository

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var bookingColumns = []string{
	model.FieldID,
	model.FieldRoomNumber,
	model.FieldCustomerName,
	model.FieldCheckIn,
	model.FieldCheckOut,
	model.FieldPaymentConfirmed,
	model.FieldPosition,
}

var (
	querySelectBookings = fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(bookingColumns, ", "), model.TableName, model.FieldPosition)
	queryDeleteBookings = "DELETE FROM " + model.TableName
	queryInsertBooking  = fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)",
		model.TableName, strings.Join(bookingColumns, ", "), strings.Join(bookingColumns, ", :"))
)

// bookingRow carries the ledger position alongside the booking.
type bookingRow struct {
	model.Booking
	Position int `db:"position"`
}

type postgresStore struct {
	db   *postgres.Connection
	otel otel.Otel
}

// NewPostgresStore keeps the snapshot as rows of the bookings table, rewritten in one transaction.
func NewPostgresStore(db *postgres.Connection, otel otel.Otel) Booking {
	return &postgresStore{
		db:   db,
		otel: otel,
	}
}

func (s *postgresStore) Save(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".postgres.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver:   "postgres",
		otelAttrBookings: len(bookings),
	})

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return failure.Persistence(opSave, err)
	}

	if err = replaceRows(ctx, tx, bookings); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to roll back booking snapshot")
		}

		log.Error().Err(err).Msg("failed to write booking snapshot to postgres")

		return failure.Persistence(opSave, err)
	}

	if err = tx.Commit(); err != nil {
		return failure.Persistence(opSave, err)
	}

	return nil
}

func replaceRows(ctx context.Context, tx *sqlx.Tx, bookings []model.Booking) error {
	if _, err := tx.ExecContext(ctx, queryDeleteBookings); err != nil {
		return fmt.Errorf("clearing bookings: %w", err)
	}

	for position, booking := range bookings {
		if _, err := tx.NamedExecContext(ctx, queryInsertBooking, bookingRow{Booking: booking, Position: position}); err != nil {
			return fmt.Errorf("inserting booking %d: %w", booking.ID, err)
		}
	}

	return nil
}

func (s *postgresStore) Load(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".postgres.Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrDriver:                 "postgres",
		constant.OtelQueryAttributeKey: querySelectBookings,
	})

	var rows []bookingRow

	if err = s.db.Read.SelectContext(ctx, &rows, querySelectBookings); err != nil {
		return nil, failure.Persistence(opLoad, err)
	}

	bookings = make([]model.Booking, len(rows))

	for i, row := range rows {
		row.CheckIn = timezone.Day(row.CheckIn)
		row.CheckOut = timezone.Day(row.CheckOut)
		bookings[i] = row.Booking
	}

	if err = checkActive(bookings); err != nil {
		return nil, failure.Persistence(opLoad, err)
	}

	return bookings, nil
}
