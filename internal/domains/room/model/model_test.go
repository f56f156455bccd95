package model_test

import (
	"hotel/internal/domains/room/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoom_String(t *testing.T) {
	room := model.Room{Number: 101, Type: model.TypeStandard, Available: true}
	assert.Equal(t, "Room 101 (Standard) - Available", room.String())

	room.Available = false
	assert.Equal(t, "Room 101 (Standard) - Booked", room.String())
}

func TestType_Matches(t *testing.T) {
	assert.True(t, model.TypeDeluxe.Matches("deluxe"))
	assert.True(t, model.TypeDeluxe.Matches("DELUXE"))
	assert.False(t, model.TypeDeluxe.Matches("Suite"))
	assert.False(t, model.TypeDeluxe.Matches(""))
}

func TestInventory(t *testing.T) {
	rooms := model.Inventory()

	numbers := make([]int, 0, len(rooms))
	for _, room := range rooms {
		numbers = append(numbers, room.Number)
		assert.True(t, room.Available)
	}

	assert.Equal(t, []int{101, 102, 201, 202, 301}, numbers)
	assert.Equal(t, model.TypeSuite, rooms[4].Type)

	rooms[0].Available = false
	assert.True(t, model.Inventory()[0].Available, "inventory must be a fresh copy")
}
