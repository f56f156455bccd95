package dto

import (
	"fmt"
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"time"
)

type QuoteRequest struct {
	RoomType string `json:"room_type" validate:"required,notblank,max=50"`
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

// Stay parses the request into a room type and its check-in/check-out days.
func (r *QuoteRequest) Stay() (roomType roomModel.Type, checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(r.CheckIn)
	if err != nil {
		return roomType, checkIn, checkOut, failure.BadRequest(fmt.Errorf("invalid check_in: %w", err))
	}

	checkOut, err = timezone.ParseDate(r.CheckOut)
	if err != nil {
		return roomType, checkIn, checkOut, failure.BadRequest(fmt.Errorf("invalid check_out: %w", err))
	}

	return roomModel.Type(r.RoomType), checkIn, checkOut, nil
}

type CreateBookingRequest struct {
	QuoteRequest
	CustomerName     string `json:"customer_name"     validate:"required,notblank,max=100"`
	PaymentConfirmed *bool  `json:"payment_confirmed" validate:"required"`
}

func (r *CreateBookingRequest) Paid() bool {
	return r.PaymentConfirmed != nil && *r.PaymentConfirmed
}

type QuoteResponse struct {
	RoomNumber    int    `json:"room_number"`
	RoomType      string `json:"room_type"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	PricePerNight int    `json:"price_per_night"`
	Nights        int    `json:"nights"`
	Total         int    `json:"total"`
}

func (r *QuoteResponse) FromModel(quote model.Quote) {
	r.RoomNumber = quote.RoomNumber
	r.RoomType = string(quote.RoomType)
	r.CheckIn = timezone.FormatDate(quote.CheckIn)
	r.CheckOut = timezone.FormatDate(quote.CheckOut)
	r.PricePerNight = quote.PricePerNight
	r.Nights = quote.Nights
	r.Total = quote.Total
}

type BookingResponse struct {
	ID               int    `json:"id"`
	RoomNumber       int    `json:"room_number"`
	CustomerName     string `json:"customer_name"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Nights           int    `json:"nights"`
	PaymentConfirmed bool   `json:"payment_confirmed"`
	Payment          string `json:"payment"`
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.RoomNumber = booking.RoomNumber
	r.CustomerName = booking.CustomerName
	r.CheckIn = timezone.FormatDate(booking.CheckIn)
	r.CheckOut = timezone.FormatDate(booking.CheckOut)
	r.Nights = booking.Nights()
	r.PaymentConfirmed = booking.PaymentConfirmed
	r.Payment = booking.PaymentStatus()
}

type GetBookingsResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int               `json:"total"`
	Pagination *gDto.Pagination  `json:"pagination,omitempty"`
}

// FromModels fills the response with the requested page. Total always counts every booking.
func (r *GetBookingsResponse) FromModels(bookings []model.Booking, query gDto.QueryParams) {
	start, end := query.Window(len(bookings))
	page := bookings[start:end]

	r.Total = len(bookings)
	r.Pagination = query.Pagination(len(bookings))
	r.Bookings = make([]BookingResponse, len(page))

	for i, booking := range page {
		r.Bookings[i].FromModel(booking)
	}
}

// CancelledMessage is the confirmation shown after a booking is removed.
func CancelledMessage(id int) string {
	return fmt.Sprintf("Booking canceled: Booking ID %d", id)
}
