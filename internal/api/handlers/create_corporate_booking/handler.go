package create_corporate_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	createCorporateBooking "github.com/m04kA/barbershop-booking/internal/usecase/create_corporate_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные корпоративного бронирования"
	msgSlotNotAvailable   = "у мастера нет свободного блока на выбранное время"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateCorporateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateCorporateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/corporate-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCorporateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /corporate-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /corporate-bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createCorporateBooking.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /corporate-bookings - Slot not available: staff_id=%s, date=%s, time=%s", req.StaffID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createCorporateBooking.ErrStaffNotFound):
			h.logger.Warn("POST /corporate-bookings - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createCorporateBooking.ErrServiceNotFound):
			h.logger.Warn("POST /corporate-bookings - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createCorporateBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createCorporateBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createCorporateBooking.ErrInvalidInput):
			h.logger.Warn("POST /corporate-bookings - Invalid input: %v", err)
			handlers.RespondInvalidInput(w, msgInvalidInput, err)

		default:
			h.logger.Error("POST /corporate-bookings - Failed to create booking: company=%q, error=%v", req.CompanyName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /corporate-bookings - Booking created successfully: booking_id=%s, company=%q", result.Booking.ID, req.CompanyName)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
