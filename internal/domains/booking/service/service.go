package service

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/ledger"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/catalog"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	otelAttrRoomType   = "booking.room_type"
	otelAttrRoomNumber = "booking.room_number"
	otelAttrBookingID  = "booking.id"
	otelAttrNights     = "booking.nights"
)

// Reservation drives the quote, confirm and cancel flow over the room catalog and the booking ledger.
type Reservation interface {
	ViewRooms(ctx context.Context) []roomModel.Room
	Quote(ctx context.Context, roomType roomModel.Type, checkIn, checkOut time.Time) (model.Quote, error)
	// ConfirmBooking turns a quote into a booking. When the booking is kept in memory but the
	// snapshot could not be written, the booking is returned together with a *failure.PersistenceError.
	ConfirmBooking(ctx context.Context, quote model.Quote, customerName string, paymentConfirmed bool) (model.Booking, error)
	CancelBooking(ctx context.Context, id int) error
	ListBookings(ctx context.Context) []model.Booking
	GetBooking(ctx context.Context, id int) (model.Booking, error)
}

// serviceImpl owns all booking state. mu guards the catalog, the ledger, the id counter and the
// snapshot write as one critical section.
type serviceImpl struct {
	mu      sync.Mutex
	catalog catalog.Catalog
	ledger  *ledger.Ledger
	store   repository.Booking
	otel    otel.Otel
	nextID  int
}

// New loads the ledger from the store and marks every booked room unavailable before returning.
// A snapshot that cannot be read is logged and the service starts with no bookings.
func New(store repository.Booking, otel otel.Otel) Reservation {
	s := &serviceImpl{
		catalog: catalog.New(),
		ledger:  ledger.New(),
		store:   store,
		otel:    otel,
	}

	s.reconcile(context.Background())

	return s
}

func (s *serviceImpl) reconcile(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reconcile")
	defer scope.End()

	if err := s.ledger.LoadFrom(ctx, s.store); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load bookings, starting with an empty ledger")
	}

	for _, booking := range s.ledger.All() {
		room, ok := s.catalog.FindByNumber(booking.RoomNumber)
		if !ok {
			log.Warn().
				Int("booking_id", booking.ID).
				Int("room_number", booking.RoomNumber).
				Msg("booking references a room outside the inventory")

			continue
		}

		// A room holds at most one active booking; later claims on it are dropped.
		if !room.Available {
			s.ledger.Remove(booking.ID)
			log.Error().
				Int("booking_id", booking.ID).
				Int("room_number", booking.RoomNumber).
				Msg("room already held by an earlier booking, dropping booking")

			continue
		}

		s.catalog.SetAvailability(booking.RoomNumber, false)
	}

	s.nextID = s.ledger.MaxID() + 1

	scope.SetAttributes(map[string]any{
		"ledger.bookings": s.ledger.Len(),
		"ledger.next_id":  s.nextID,
	})

	log.Info().Int("bookings", s.ledger.Len()).Int("next_id", s.nextID).Msg("booking ledger reconciled")
}

func (s *serviceImpl) ViewRooms(ctx context.Context) []roomModel.Room {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ViewRooms")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.ListAll()
}

func (s *serviceImpl) Quote(ctx context.Context, roomType roomModel.Type, checkIn, checkOut time.Time) (quote model.Quote, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRoomType, string(roomType))

	nights, err := model.StayNights(checkIn, checkOut)
	if err != nil {
		return model.Quote{}, err //nolint:wrapcheck
	}

	s.mu.Lock()
	room, ok := s.catalog.FindAvailableByType(roomType)
	s.mu.Unlock()

	if !ok {
		logger.Ctx(ctx).Info().Str("room_type", string(roomType)).Msg("no available room for quote")

		return model.Quote{}, noAvailableRoom(roomType)
	}

	rate := model.RateFor(room.Type)

	scope.SetAttributes(map[string]any{
		otelAttrRoomNumber: room.Number,
		otelAttrNights:     nights,
	})

	return model.Quote{
		RoomNumber:    room.Number,
		RoomType:      room.Type,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		PricePerNight: rate,
		Nights:        nights,
		Total:         rate * nights,
	}, nil
}

func (s *serviceImpl) ConfirmBooking(ctx context.Context, quote model.Quote, customerName string, paymentConfirmed bool) (booking model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRoomNumber, quote.RoomNumber)

	if !paymentConfirmed {
		logger.Ctx(ctx).Info().Int("room_number", quote.RoomNumber).Msg("payment not completed, booking dropped")

		return model.Booking{}, failure.PaymentDeclined
	}

	if _, err = model.StayNights(quote.CheckIn, quote.CheckOut); err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.catalog.FindByNumber(quote.RoomNumber)
	if !ok || !room.Available {
		return model.Booking{}, noAvailableRoom(quote.RoomType)
	}

	booking = model.Booking{
		ID:               s.nextID,
		RoomNumber:       room.Number,
		CustomerName:     customerName,
		CheckIn:          quote.CheckIn,
		CheckOut:         quote.CheckOut,
		PaymentConfirmed: true,
	}

	s.catalog.SetAvailability(room.Number, false)
	s.ledger.Add(booking)
	s.nextID++

	scope.SetAttribute(otelAttrBookingID, booking.ID)

	if err = s.store.Save(ctx, s.ledger.All()); err != nil {
		logger.Ctx(ctx).Error().Err(err).Int("booking_id", booking.ID).Msg("booking confirmed but not persisted")

		return booking, fmt.Errorf("booking %d kept in memory: %w", booking.ID, err)
	}

	logger.Ctx(ctx).Info().Int("booking_id", booking.ID).Int("room_number", booking.RoomNumber).Msg("booking confirmed")

	return booking, nil
}

func (s *serviceImpl) CancelBooking(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrBookingID, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := s.ledger.Remove(id)
	if !ok {
		return failure.BookingNotFound
	}

	s.catalog.SetAvailability(removed.RoomNumber, true)

	if err = s.store.Save(ctx, s.ledger.All()); err != nil {
		logger.Ctx(ctx).Error().Err(err).Int("booking_id", id).Msg("booking cancelled but not persisted")

		return fmt.Errorf("cancellation of booking %d kept in memory: %w", id, err)
	}

	logger.Ctx(ctx).Info().Int("booking_id", id).Int("room_number", removed.RoomNumber).Msg("booking cancelled")

	return nil
}

func (s *serviceImpl) ListBookings(ctx context.Context) []model.Booking {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBookings")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.All()
}

func (s *serviceImpl) GetBooking(ctx context.Context, id int) (booking model.Booking, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrBookingID, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.ledger.FindByID(id)
	if !ok {
		return model.Booking{}, failure.BookingNotFound
	}

	return booking, nil
}

func noAvailableRoom(roomType roomModel.Type) error {
	return fmt.Errorf("%w: %s", failure.NoAvailableRoom, roomType)
}
