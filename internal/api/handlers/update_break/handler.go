package update_break

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/breaks"
	"github.com/m04kA/barbershop-booking/internal/service/breaks/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBreak       = "некорректные данные перерыва"
	msgNotFound           = "перерыв не найден"
)

type Handler struct {
	service BreakService
	logger  Logger
}

func NewHandler(service BreakService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff-breaks/{breakId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	breakID := mux.Vars(r)["breakId"]

	var req models.UpdateBreakRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff-breaks/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.Update(r.Context(), breakID, &req)
	if err != nil {
		switch {
		case errors.Is(err, breaks.ErrBreakNotFound):
			h.logger.Warn("PUT /staff-breaks/{id} - Break not found: break_id=%s", breakID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, breaks.ErrInvalidInput):
			h.logger.Warn("PUT /staff-breaks/{id} - Invalid break: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBreak)

		default:
			h.logger.Error("PUT /staff-breaks/{id} - Failed to update break: break_id=%s, error=%v", breakID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff-breaks/{id} - Break updated successfully: break_id=%s", breakID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBreak(updated))
}
