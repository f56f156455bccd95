package model_test

import (
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRateFor(t *testing.T) {
	tests := []struct {
		roomType roomModel.Type
		want     int
	}{
		{roomType: roomModel.TypeStandard, want: 1000},
		{roomType: roomModel.TypeDeluxe, want: 2000},
		{roomType: roomModel.TypeSuite, want: 3000},
		{roomType: "suite", want: 3000},
		{roomType: "DELUXE", want: 2000},
		{roomType: "Penthouse", want: 1000},
		{roomType: "", want: 1000},
	}

	for _, tt := range tests {
		t.Run(string(tt.roomType), func(t *testing.T) {
			assert.Equal(t, tt.want, model.RateFor(tt.roomType))
		})
	}
}

func TestStayNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
		wantErr  error
	}{
		{name: "three nights", checkIn: date(2024, 1, 1), checkOut: date(2024, 1, 4), want: 3},
		{name: "one night", checkIn: date(2024, 1, 1), checkOut: date(2024, 1, 2), want: 1},
		{name: "eight thousand years", checkIn: date(1000, 1, 1), checkOut: date(9000, 1, 1), want: 2921940},
		{name: "same day", checkIn: date(2024, 1, 1), checkOut: date(2024, 1, 1), wantErr: failure.InvalidDateRange},
		{name: "check-out before check-in", checkIn: date(2024, 1, 4), checkOut: date(2024, 1, 1), wantErr: failure.InvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nights, err := model.StayNights(tt.checkIn, tt.checkOut)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, nights)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, nights)
		})
	}
}

func TestBooking_Display(t *testing.T) {
	booking := model.Booking{
		ID:               1,
		RoomNumber:       201,
		CustomerName:     "Ann",
		CheckIn:          date(2024, 1, 1),
		CheckOut:         date(2024, 1, 4),
		PaymentConfirmed: true,
	}

	assert.Equal(t, 3, booking.Nights())
	assert.Equal(t, model.PaymentCompleted, booking.PaymentStatus())

	booking.PaymentConfirmed = false
	assert.Equal(t, model.PaymentPending, booking.PaymentStatus())
}
