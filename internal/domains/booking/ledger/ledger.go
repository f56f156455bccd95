package ledger

import (
	"context"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	"slices"
)

// Ledger is the ordered list of active bookings. It is not safe for concurrent use.
type Ledger struct {
	bookings []model.Booking
}

func New() *Ledger {
	return &Ledger{}
}

// LoadFrom replaces the ledger with the store's snapshot. On failure the ledger is left
// empty and the error is returned for the caller to report.
func (l *Ledger) LoadFrom(ctx context.Context, store repository.Booking) error {
	bookings, err := store.Load(ctx)
	if err != nil {
		l.bookings = nil

		return err //nolint:wrapcheck
	}

	l.bookings = slices.Clone(bookings)

	return nil
}

// Add appends a booking whose id has already been assigned.
func (l *Ledger) Add(booking model.Booking) {
	l.bookings = append(l.bookings, booking)
}

// Remove deletes the first booking with the id and reports whether one was found.
func (l *Ledger) Remove(id int) (model.Booking, bool) {
	idx := l.index(id)
	if idx < 0 {
		return model.Booking{}, false
	}

	removed := l.bookings[idx]
	l.bookings = slices.Delete(l.bookings, idx, idx+1)

	return removed, true
}

func (l *Ledger) FindByID(id int) (model.Booking, bool) {
	idx := l.index(id)
	if idx < 0 {
		return model.Booking{}, false
	}

	return l.bookings[idx], true
}

// All returns a copy of the bookings in insertion order.
func (l *Ledger) All() []model.Booking {
	all := slices.Clone(l.bookings)
	if all == nil {
		return []model.Booking{}
	}

	return all
}

// MaxID returns the highest booking id, or 0 for an empty ledger.
func (l *Ledger) MaxID() int {
	maxID := 0
	for _, booking := range l.bookings {
		maxID = max(maxID, booking.ID)
	}

	return maxID
}

func (l *Ledger) Len() int {
	return len(l.bookings)
}

func (l *Ledger) index(id int) int {
	return slices.IndexFunc(l.bookings, func(booking model.Booking) bool {
		return booking.ID == id
	})
}
