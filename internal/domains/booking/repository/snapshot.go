package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"time"
)

const (
	snapshotVersion     = 1
	snapshotContentType = constant.ContentTypeJSON
)

var errCorruptSnapshot = errors.New("corrupt booking snapshot")

// snapshot is the document written by the file, redis and s3 stores.
type snapshot struct {
	Version  int      `json:"version"`
	Bookings []record `json:"bookings"`
}

type record struct {
	ID               int    `json:"id"`
	RoomNumber       int    `json:"room_number"`
	CustomerName     string `json:"customer_name"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	PaymentConfirmed bool   `json:"payment_confirmed"`
}

func encodeSnapshot(bookings []model.Booking) ([]byte, error) {
	doc := snapshot{
		Version:  snapshotVersion,
		Bookings: make([]record, len(bookings)),
	}

	for i, booking := range bookings {
		doc.Bookings[i] = record{
			ID:               booking.ID,
			RoomNumber:       booking.RoomNumber,
			CustomerName:     booking.CustomerName,
			CheckIn:          timezone.FormatDate(booking.CheckIn),
			CheckOut:         timezone.FormatDate(booking.CheckOut),
			PaymentConfirmed: booking.PaymentConfirmed,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding booking snapshot: %w", err)
	}

	return data, nil
}

func decodeSnapshot(data []byte) ([]model.Booking, error) {
	var doc snapshot

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptSnapshot, err)
	}

	if doc.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errCorruptSnapshot, doc.Version)
	}

	bookings := make([]model.Booking, 0, len(doc.Bookings))

	for _, rec := range doc.Bookings {
		booking, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: booking %d: %w", errCorruptSnapshot, rec.ID, err)
		}

		bookings = append(bookings, booking)
	}

	if err := checkActive(bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// checkActive rejects ledgers where an id or a room is held by more than one booking.
func checkActive(bookings []model.Booking) error {
	ids := make(map[int]struct{}, len(bookings))
	rooms := make(map[int]int, len(bookings))

	for _, booking := range bookings {
		if _, dup := ids[booking.ID]; dup {
			return fmt.Errorf("%w: duplicate booking id %d", errCorruptSnapshot, booking.ID)
		}

		if holder, dup := rooms[booking.RoomNumber]; dup {
			return fmt.Errorf("%w: room %d held by bookings %d and %d", errCorruptSnapshot, booking.RoomNumber, holder, booking.ID)
		}

		ids[booking.ID] = struct{}{}
		rooms[booking.RoomNumber] = booking.ID
	}

	return nil
}

func (r record) toModel() (model.Booking, error) {
	if r.ID <= 0 {
		return model.Booking{}, fmt.Errorf("invalid id %d", r.ID)
	}

	checkIn, err := time.Parse(constant.DateFormat, r.CheckIn)
	if err != nil {
		return model.Booking{}, fmt.Errorf("check_in: %w", err)
	}

	checkOut, err := time.Parse(constant.DateFormat, r.CheckOut)
	if err != nil {
		return model.Booking{}, fmt.Errorf("check_out: %w", err)
	}

	if _, err = model.StayNights(checkIn, checkOut); err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	return model.Booking{
		ID:               r.ID,
		RoomNumber:       r.RoomNumber,
		CustomerName:     r.CustomerName,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		PaymentConfirmed: r.PaymentConfirmed,
	}, nil
}
