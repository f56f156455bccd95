package booking

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
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
	router.Post("/quotes", handler.CreateQuote)

	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

// CreateQuote prices a stay in the first available room of the requested type.
// @Summary Quote a stay
// @Description Find an available room of the given type and price the stay. Nothing is reserved.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quote"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "No available rooms of the type"
// @Router /v1/quotes [post]
func (handler *Handler) CreateQuote(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateQuote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	roomType, checkIn, checkOut, err := req.Stay()
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	quote, err := handler.service.Quote(ctx, roomType, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Info().Err(err).Msg("quote refused")

		response.WithError(writer, err)

		return
	}

	resp := dto.QuoteResponse{}
	resp.FromModel(quote)

	response.WithJSON(writer, http.StatusOK, resp)
}

// CreateBooking quotes a stay and confirms it in one step.
// @Summary Book a room
// @Description Quote the stay and confirm it. A booking is only created when payment_confirmed is true.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking"
// @Failure 400 {object} response.Error
// @Failure 402 {object} response.Error "Payment not completed"
// @Failure 409 {object} response.Error "No available rooms of the type"
// @Failure 500 {object} response.Error "Booking kept in memory but not persisted"
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	roomType, checkIn, checkOut, err := req.Stay()
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	quote, err := handler.service.Quote(ctx, roomType, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.ConfirmBooking(ctx, quote, req.CustomerName, req.Paid())
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("booking created")

	resp := dto.BookingResponse{}
	resp.FromModel(booking)

	response.WithJSON(writer, http.StatusCreated, resp)
}

// GetBookings lists the active bookings in the order they were made.
// @Summary List bookings
// @Description List every active booking, or one page of them when limit is given.
// @Tags Booking
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, up to 100"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Bookings"
// @Failure 400 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request)

	if err := validator.ValidateStruct(&queryParams); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	resp := dto.GetBookingsResponse{}
	resp.FromModels(handler.service.ListBookings(ctx), queryParams)

	response.WithJSON(writer, http.StatusOK, resp)
}

// GetBookingByID returns a single booking.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if !ok {
		scope.TraceError(failure.InvalidBookingID)
		response.WithError(writer, failure.InvalidBookingID)

		return
	}

	booking, err := handler.service.GetBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	resp := dto.BookingResponse{}
	resp.FromModel(booking)

	response.WithJSON(writer, http.StatusOK, resp)
}

// CancelBooking removes a booking and frees its room.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message "Booking canceled"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error "Cancellation kept in memory but not persisted"
// @Router /v1/bookings/{id} [delete]
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if !ok {
		scope.TraceError(failure.InvalidBookingID)
		response.WithError(writer, failure.InvalidBookingID)

		return
	}

	if err := handler.service.CancelBooking(ctx, id); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, dto.CancelledMessage(id))
}
