package model

import (
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"strings"
	"time"
)

const (
	TableName = "bookings"

	FieldID               = "id"
	FieldPosition         = "position"
	FieldRoomNumber       = "room_number"
	FieldCustomerName     = "customer_name"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldPaymentConfirmed = "payment_confirmed"
)

// Nightly rates. Types outside the table fall back to DefaultRate.
const (
	RateStandard = 1000
	RateDeluxe   = 2000
	RateSuite    = 3000
	DefaultRate  = RateStandard
)

const (
	PaymentCompleted = "Completed"
	PaymentPending   = "Pending"
)

var rates = map[string]int{
	strings.ToLower(string(roomModel.TypeStandard)): RateStandard,
	strings.ToLower(string(roomModel.TypeDeluxe)):   RateDeluxe,
	strings.ToLower(string(roomModel.TypeSuite)):    RateSuite,
}

type Booking struct {
	ID               int       `db:"id"`
	RoomNumber       int       `db:"room_number"`
	CustomerName     string    `db:"customer_name"`
	CheckIn          time.Time `db:"check_in"`
	CheckOut         time.Time `db:"check_out"`
	PaymentConfirmed bool      `db:"payment_confirmed"`
}

func (b Booking) Nights() int {
	return timezone.DaysBetween(b.CheckIn, b.CheckOut)
}

func (b Booking) PaymentStatus() string {
	if b.PaymentConfirmed {
		return PaymentCompleted
	}

	return PaymentPending
}

// Quote is the price of a stay in a specific room. It is never persisted.
type Quote struct {
	RoomNumber    int
	RoomType      roomModel.Type
	CheckIn       time.Time
	CheckOut      time.Time
	PricePerNight int
	Nights        int
	Total         int
}

// RateFor returns the nightly rate for a room type, matched case-insensitively.
func RateFor(roomType roomModel.Type) int {
	if rate, ok := rates[strings.ToLower(string(roomType))]; ok {
		return rate
	}

	return DefaultRate
}

// StayNights counts the nights between check-in and check-out, rejecting stays shorter than one night.
func StayNights(checkIn, checkOut time.Time) (int, error) {
	nights := timezone.DaysBetween(checkIn, checkOut)
	if nights < 1 {
		return 0, failure.InvalidDateRange
	}

	return nights, nil
}
