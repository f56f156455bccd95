package dto

import (
	"hotel/internal/domains/room/model"
)

type RoomResponse struct {
	Number    int    `json:"number"`
	Type      string `json:"type"`
	Available bool   `json:"available"`
	Status    string `json:"status"`
	Display   string `json:"display"`
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.Number = room.Number
	r.Type = string(room.Type)
	r.Available = room.Available
	r.Status = room.Status()
	r.Display = room.String()
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	Available int            `json:"available"`
	Total     int            `json:"total"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room) {
	r.Total = len(rooms)
	r.Available = 0
	r.Rooms = make([]RoomResponse, len(rooms))

	for i, room := range rooms {
		r.Rooms[i].FromModel(room)

		if room.Available {
			r.Available++
		}
	}
}
