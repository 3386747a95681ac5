package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/bookings"
	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
)

const msgNotFound = "бронирование не найдено"

type Handler struct {
	service   BookingService
	corporate CorporateRepository
	logger    Logger
}

func NewHandler(service BookingService, corporate CorporateRepository, logger Logger) *Handler {
	return &Handler{
		service:   service,
		corporate: corporate,
		logger:    logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := BookingResponse{BookingResponse: models.FromDomainBooking(booking)}
	if booking.Kind == domain.KindCorporate {
		details, err := h.corporate.GetByBookingID(r.Context(), bookingID)
		if err != nil {
			h.logger.Error("GET /bookings/{id} - Failed to get corporate details: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
		resp.Corporate = FromDomainCorporate(details)
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
