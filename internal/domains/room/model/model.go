package model

import (
	"fmt"
	"strings"
)

// Type is the room tier. Unknown values are allowed and priced at the default rate.
type Type string

const (
	TypeStandard Type = "Standard"
	TypeDeluxe   Type = "Deluxe"
	TypeSuite    Type = "Suite"
)

const (
	StatusAvailable = "Available"
	StatusBooked    = "Booked"
)

type Room struct {
	Number    int
	Type      Type
	Available bool
}

// Matches compares room types case-insensitively.
func (t Type) Matches(other Type) bool {
	return strings.EqualFold(string(t), string(other))
}

func (r Room) Status() string {
	if r.Available {
		return StatusAvailable
	}

	return StatusBooked
}

// String renders the room the way it is listed to guests, e.g. "Room 101 (Standard) - Available".
func (r Room) String() string {
	return fmt.Sprintf("Room %d (%s) - %s", r.Number, r.Type, r.Status())
}

// Inventory is the fixed set of rooms, in listing order.
func Inventory() []Room {
	return []Room{
		{Number: 101, Type: TypeStandard, Available: true},
		{Number: 102, Type: TypeStandard, Available: true},
		{Number: 201, Type: TypeDeluxe, Available: true},
		{Number: 202, Type: TypeDeluxe, Available: true},
		{Number: 301, Type: TypeSuite, Available: true},
	}
}
