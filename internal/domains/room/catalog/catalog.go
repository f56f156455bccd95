package catalog

import (
	"hotel/internal/domains/room/model"
	"slices"
)

// Catalog holds the live availability of the fixed room inventory.
// It is not safe for concurrent use; the reservation service serialises access.
type Catalog interface {
	FindAvailableByType(roomType model.Type) (model.Room, bool)
	FindByNumber(number int) (model.Room, bool)
	SetAvailability(number int, available bool)
	ListAll() []model.Room
}

type catalogImpl struct {
	rooms []model.Room
}

// New initialises the catalog with every room available.
func New() Catalog {
	return &catalogImpl{
		rooms: model.Inventory(),
	}
}

// FindAvailableByType returns the first available room of the type, in listing order.
func (c *catalogImpl) FindAvailableByType(roomType model.Type) (model.Room, bool) {
	for _, room := range c.rooms {
		if room.Available && room.Type.Matches(roomType) {
			return room, true
		}
	}

	return model.Room{}, false
}

func (c *catalogImpl) FindByNumber(number int) (model.Room, bool) {
	idx := c.index(number)
	if idx < 0 {
		return model.Room{}, false
	}

	return c.rooms[idx], true
}

// SetAvailability is a no-op for unknown room numbers.
func (c *catalogImpl) SetAvailability(number int, available bool) {
	if idx := c.index(number); idx >= 0 {
		c.rooms[idx].Available = available
	}
}

func (c *catalogImpl) ListAll() []model.Room {
	return slices.Clone(c.rooms)
}

func (c *catalogImpl) index(number int) int {
	return slices.IndexFunc(c.rooms, func(room model.Room) bool {
		return room.Number == number
	})
}
