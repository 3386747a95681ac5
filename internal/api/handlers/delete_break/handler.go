package delete_break

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/breaks"
)

const msgNotFound = "перерыв не найден"

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

// Handle DELETE /api/v1/staff-breaks/{breakId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	breakID := mux.Vars(r)["breakId"]

	if err := h.service.Delete(r.Context(), breakID); err != nil {
		switch {
		case errors.Is(err, breaks.ErrBreakNotFound):
			h.logger.Warn("DELETE /staff-breaks/{id} - Break not found: break_id=%s", breakID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /staff-breaks/{id} - Failed to delete break: break_id=%s, error=%v", breakID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff-breaks/{id} - Break deleted successfully: break_id=%s", breakID)
	w.WriteHeader(http.StatusNoContent)
}
