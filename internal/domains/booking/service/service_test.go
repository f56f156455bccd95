package service_test

import (
	"context"
	"errors"
	"hotel/infras/otel/mocks"
	repoMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/service"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var (
	checkIn  = day(2024, 1, 1)
	checkOut = day(2024, 1, 4)
)

func newService(t *testing.T, loaded []model.Booking, loadErr error) (service.Reservation, *repoMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := repoMocks.NewMockBooking(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(loaded, loadErr)

	return service.New(store, mocks.NewOtel()), store
}

// assertAvailability checks that a room is unavailable exactly when some booking holds it.
func assertAvailability(t *testing.T, svc service.Reservation) {
	t.Helper()

	ctx := context.Background()
	held := map[int]bool{}

	for _, booking := range svc.ListBookings(ctx) {
		held[booking.RoomNumber] = true
	}

	for _, room := range svc.ViewRooms(ctx) {
		assert.Equal(t, !held[room.Number], room.Available, "room %d", room.Number)
	}
}

func book(t *testing.T, svc service.Reservation, store *repoMocks.MockBooking, roomType roomModel.Type) model.Booking {
	t.Helper()

	ctx := context.Background()

	quote, err := svc.Quote(ctx, roomType, checkIn, checkOut)
	require.NoError(t, err)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	booking, err := svc.ConfirmBooking(ctx, quote, "Guest", true)
	require.NoError(t, err)

	return booking
}

func TestNew_Reconciliation(t *testing.T) {
	tests := []struct {
		name          string
		loaded        []model.Booking
		loadErr       error
		wantBookings  int
		wantAvailable map[int]bool
		wantNextID    int
	}{
		{
			name: "booked rooms become unavailable",
			loaded: []model.Booking{
				{ID: 2, RoomNumber: 101, CustomerName: "Ann", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
				{ID: 7, RoomNumber: 301, CustomerName: "Budi", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
			},
			wantBookings:  2,
			wantAvailable: map[int]bool{101: false, 102: true, 201: true, 202: true, 301: false},
			wantNextID:    8,
		},
		{
			name:          "empty store",
			loaded:        []model.Booking{},
			wantAvailable: map[int]bool{101: true, 102: true, 201: true, 202: true, 301: true},
			wantNextID:    1,
		},
		{
			name:          "corrupt store starts empty",
			loadErr:       failure.Persistence("load", errors.New("invalid character")),
			wantAvailable: map[int]bool{101: true, 102: true, 201: true, 202: true, 301: true},
			wantNextID:    1,
		},
		{
			name: "unknown room number is ignored",
			loaded: []model.Booking{
				{ID: 1, RoomNumber: 999, CustomerName: "Ghost", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
			},
			wantBookings:  1,
			wantAvailable: map[int]bool{101: true, 102: true, 201: true, 202: true, 301: true},
			wantNextID:    2,
		},
		{
			name: "second booking on a held room is dropped",
			loaded: []model.Booking{
				{ID: 1, RoomNumber: 101, CustomerName: "Ann", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
				{ID: 4, RoomNumber: 101, CustomerName: "Budi", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
			},
			wantBookings:  1,
			wantAvailable: map[int]bool{101: false, 102: true, 201: true, 202: true, 301: true},
			wantNextID:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t, tt.loaded, tt.loadErr)

			assert.Len(t, svc.ListBookings(context.Background()), tt.wantBookings)

			for _, room := range svc.ViewRooms(context.Background()) {
				assert.Equal(t, tt.wantAvailable[room.Number], room.Available, "room %d", room.Number)
			}

			if tt.wantAvailable[102] {
				booking := book(t, svc, store, roomModel.TypeStandard)
				assert.Equal(t, tt.wantNextID, booking.ID)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name      string
		roomType  roomModel.Type
		checkIn   time.Time
		checkOut  time.Time
		wantErr   error
		wantQuote model.Quote
	}{
		{
			name:     "deluxe three nights",
			roomType: roomModel.TypeDeluxe,
			checkIn:  checkIn,
			checkOut: checkOut,
			wantQuote: model.Quote{
				RoomNumber:    201,
				RoomType:      roomModel.TypeDeluxe,
				CheckIn:       checkIn,
				CheckOut:      checkOut,
				PricePerNight: 2000,
				Nights:        3,
				Total:         6000,
			},
		},
		{
			name:     "type matched case-insensitively",
			roomType: "suite",
			checkIn:  day(2024, 2, 28),
			checkOut: day(2024, 3, 1),
			wantQuote: model.Quote{
				RoomNumber:    301,
				RoomType:      roomModel.TypeSuite,
				CheckIn:       day(2024, 2, 28),
				CheckOut:      day(2024, 3, 1),
				PricePerNight: 3000,
				Nights:        2,
				Total:         6000,
			},
		},
		{
			name:     "stay spanning millennia",
			roomType: roomModel.TypeSuite,
			checkIn:  day(1000, 1, 1),
			checkOut: day(9000, 1, 1),
			wantQuote: model.Quote{
				RoomNumber:    301,
				RoomType:      roomModel.TypeSuite,
				CheckIn:       day(1000, 1, 1),
				CheckOut:      day(9000, 1, 1),
				PricePerNight: 3000,
				Nights:        2921940,
				Total:         8765820000,
			},
		},
		{
			name:     "same day stay",
			roomType: roomModel.TypeStandard,
			checkIn:  checkIn,
			checkOut: checkIn,
			wantErr:  failure.InvalidDateRange,
		},
		{
			name:     "check-out before check-in",
			roomType: roomModel.TypeStandard,
			checkIn:  checkOut,
			checkOut: checkIn,
			wantErr:  failure.InvalidDateRange,
		},
		{
			name:     "invalid range reported before unknown type",
			roomType: "Penthouse",
			checkIn:  checkOut,
			checkOut: checkIn,
			wantErr:  failure.InvalidDateRange,
		},
		{
			name:     "unknown type has no rooms",
			roomType: "Penthouse",
			checkIn:  checkIn,
			checkOut: checkOut,
			wantErr:  failure.NoAvailableRoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, nil, nil)

			quote, err := svc.Quote(context.Background(), tt.roomType, tt.checkIn, tt.checkOut)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assertAvailability(t, svc)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantQuote, quote)
		})
	}
}

func TestQuote_NoAvailableRoomMessage(t *testing.T) {
	svc, store := newService(t, nil, nil)

	book(t, svc, store, roomModel.TypeSuite)

	_, err := svc.Quote(context.Background(), roomModel.TypeSuite, checkIn, checkOut)

	require.ErrorIs(t, err, failure.NoAvailableRoom)
	assert.Equal(t, "No available rooms of type: Suite", err.Error())
}

func TestConfirmBooking(t *testing.T) {
	tests := []struct {
		name      string
		paid      bool
		setupMock func(t *testing.T, store *repoMocks.MockBooking)
		wantErr   error
	}{
		{
			name: "payment confirmed",
			paid: true,
			setupMock: func(t *testing.T, store *repoMocks.MockBooking) {
				store.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, bookings []model.Booking) error {
						require.Len(t, bookings, 1)
						assert.Equal(t, 201, bookings[0].RoomNumber)

						return nil
					})
			},
		},
		{
			name:      "payment declined",
			paid:      false,
			setupMock: func(_ *testing.T, _ *repoMocks.MockBooking) {},
			wantErr:   failure.PaymentDeclined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t, nil, nil)
			tt.setupMock(t, store)

			quote, err := svc.Quote(context.Background(), roomModel.TypeDeluxe, checkIn, checkOut)
			require.NoError(t, err)

			booking, err := svc.ConfirmBooking(context.Background(), quote, "Ann", tt.paid)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, svc.ListBookings(context.Background()))

				room := findRoom(t, svc, 201)
				assert.True(t, room.Available)
				assertAvailability(t, svc)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, booking.ID)
			assert.Equal(t, "Ann", booking.CustomerName)
			assert.True(t, booking.PaymentConfirmed)
			assert.Equal(t, checkIn, booking.CheckIn)
			assert.Equal(t, checkOut, booking.CheckOut)
			assert.False(t, findRoom(t, svc, 201).Available)
			assertAvailability(t, svc)
		})
	}
}

func TestConfirmBooking_SaveFailureKeepsBooking(t *testing.T) {
	svc, store := newService(t, nil, nil)

	quote, err := svc.Quote(context.Background(), roomModel.TypeStandard, checkIn, checkOut)
	require.NoError(t, err)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(failure.Persistence("save", errors.New("disk full")))

	booking, err := svc.ConfirmBooking(context.Background(), quote, "Ann", true)

	require.Error(t, err)
	assert.True(t, failure.IsPersistence(err))
	assert.Equal(t, 1, booking.ID)

	got, err := svc.GetBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking, got)
	assert.False(t, findRoom(t, svc, 101).Available)
	assertAvailability(t, svc)
}

func TestConfirmBooking_StaleQuote(t *testing.T) {
	svc, store := newService(t, nil, nil)

	first, err := svc.Quote(context.Background(), roomModel.TypeSuite, checkIn, checkOut)
	require.NoError(t, err)

	second, err := svc.Quote(context.Background(), roomModel.TypeSuite, checkIn, checkOut)
	require.NoError(t, err)
	require.Equal(t, first.RoomNumber, second.RoomNumber)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	_, err = svc.ConfirmBooking(context.Background(), first, "Ann", true)
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(context.Background(), second, "Budi", true)
	assert.ErrorIs(t, err, failure.NoAvailableRoom)
	assert.Len(t, svc.ListBookings(context.Background()), 1)
	assertAvailability(t, svc)
}

func TestStandardRoomsExhausted(t *testing.T) {
	svc, store := newService(t, nil, nil)

	first := book(t, svc, store, roomModel.TypeStandard)
	second := book(t, svc, store, roomModel.TypeStandard)

	assert.Equal(t, 101, first.RoomNumber)
	assert.Equal(t, 102, second.RoomNumber)

	_, err := svc.Quote(context.Background(), roomModel.TypeStandard, checkIn, checkOut)
	assert.ErrorIs(t, err, failure.NoAvailableRoom)
	assertAvailability(t, svc)
}

func TestCancelBooking(t *testing.T) {
	svc, store := newService(t, nil, nil)

	booking := book(t, svc, store, roomModel.TypeStandard)
	require.False(t, findRoom(t, svc, 101).Available)

	store.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, bookings []model.Booking) error {
			assert.Empty(t, bookings)

			return nil
		})

	require.NoError(t, svc.CancelBooking(context.Background(), booking.ID))

	assert.True(t, findRoom(t, svc, 101).Available)
	assertAvailability(t, svc)

	quote, err := svc.Quote(context.Background(), roomModel.TypeStandard, checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 101, quote.RoomNumber)

	_, err = svc.GetBooking(context.Background(), booking.ID)
	assert.ErrorIs(t, err, failure.BookingNotFound)
}

func TestCancelBooking_AfterLoadingDoubleHeldRoom(t *testing.T) {
	svc, store := newService(t, []model.Booking{
		{ID: 1, RoomNumber: 101, CustomerName: "Ann", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
		{ID: 2, RoomNumber: 101, CustomerName: "Budi", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
	}, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.CancelBooking(ctx, 2), failure.BookingNotFound)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, svc.CancelBooking(ctx, 1))

	assertAvailability(t, svc)
	assert.Empty(t, svc.ListBookings(ctx))
}

func TestCancelBooking_Errors(t *testing.T) {
	tests := []struct {
		name      string
		id        int
		setupMock func(store *repoMocks.MockBooking)
		check     func(t *testing.T, err error)
		wantLeft  int
	}{
		{
			name:      "unknown id",
			id:        42,
			setupMock: func(_ *repoMocks.MockBooking) {},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, failure.BookingNotFound)
			},
			wantLeft: 1,
		},
		{
			name: "save failure keeps cancellation",
			id:   1,
			setupMock: func(store *repoMocks.MockBooking) {
				store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(failure.Persistence("save", errors.New("read-only file system")))
			},
			check: func(t *testing.T, err error) {
				assert.True(t, failure.IsPersistence(err))
			},
			wantLeft: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t, nil, nil)
			book(t, svc, store, roomModel.TypeDeluxe)
			tt.setupMock(store)

			err := svc.CancelBooking(context.Background(), tt.id)

			require.Error(t, err)
			tt.check(t, err)
			assert.Len(t, svc.ListBookings(context.Background()), tt.wantLeft)
			assertAvailability(t, svc)
		})
	}
}

func TestBookingIDsAreNotReused(t *testing.T) {
	svc, store := newService(t, nil, nil)

	first := book(t, svc, store, roomModel.TypeStandard)
	second := book(t, svc, store, roomModel.TypeDeluxe)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, svc.CancelBooking(context.Background(), first.ID))

	third := book(t, svc, store, roomModel.TypeSuite)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 3, third.ID)

	ids := []int{}
	for _, booking := range svc.ListBookings(context.Background()) {
		ids = append(ids, booking.ID)
	}

	assert.Equal(t, []int{2, 3}, ids)
}

func TestGetBooking(t *testing.T) {
	loaded := []model.Booking{
		{ID: 5, RoomNumber: 202, CustomerName: "Citra", CheckIn: checkIn, CheckOut: checkOut, PaymentConfirmed: true},
	}

	svc, _ := newService(t, loaded, nil)

	got, err := svc.GetBooking(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, loaded[0], got)

	_, err = svc.GetBooking(context.Background(), 6)
	assert.ErrorIs(t, err, failure.BookingNotFound)
}

func TestConcurrentBookingsNeverDoubleBook(t *testing.T) {
	svc, store := newService(t, nil, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	const guests = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed []model.Booking
	)

	for range guests {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ctx := context.Background()

			for {
				quote, err := svc.Quote(ctx, roomModel.TypeStandard, checkIn, checkOut)
				if err != nil {
					return
				}

				booking, err := svc.ConfirmBooking(ctx, quote, "Guest", true)
				if err != nil {
					continue
				}

				mu.Lock()
				confirmed = append(confirmed, booking)
				mu.Unlock()

				return
			}
		}()
	}

	wg.Wait()

	require.Len(t, confirmed, 2)
	assert.NotEqual(t, confirmed[0].RoomNumber, confirmed[1].RoomNumber)
	assert.NotEqual(t, confirmed[0].ID, confirmed[1].ID)
	assertAvailability(t, svc)
}

func findRoom(t *testing.T, svc service.Reservation, number int) roomModel.Room {
	t.Helper()

	for _, room := range svc.ViewRooms(context.Background()) {
		if room.Number == number {
			return room
		}
	}

	t.Fatalf("room %d not listed", number)

	return roomModel.Room{}
}
