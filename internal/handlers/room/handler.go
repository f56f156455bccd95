package room

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/service"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamType = "type"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
	})
}

// GetRooms lists every room with its current availability.
// @Summary List rooms
// @Description List the room inventory in order, optionally narrowed to one room type.
// @Tags Room
// @Produce json
// @Param type query string false "Room type (Standard, Deluxe, Suite), case-insensitive"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	roomType := request.URL.Query().Get(queryParamType)
	if err := validator.ValidateVar(roomType, "omitempty,max=50"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid room type filter")

		response.WithError(writer, err)

		return
	}

	rooms := handler.service.ViewRooms(ctx)

	if roomType != constant.Empty {
		filtered := make([]model.Room, 0, len(rooms))

		for _, room := range rooms {
			if room.Type.Matches(model.Type(roomType)) {
				filtered = append(filtered, room)
			}
		}

		rooms = filtered
	}

	resp := dto.GetRoomsResponse{}
	resp.FromModels(rooms)

	response.WithJSON(writer, http.StatusOK, resp)
}
