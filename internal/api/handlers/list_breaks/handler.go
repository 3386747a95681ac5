package list_breaks

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/breaks"
	"github.com/m04kA/barbershop-booking/internal/service/breaks/models"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

const msgInvalidParams = "некорректные параметры запроса"

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

// Handle GET /api/v1/staff-breaks
// Query params: staffId, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	staffID := query.Get("staffId")

	from, err := optionalDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /staff-breaks - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	to, err := optionalDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /staff-breaks - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), staffID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, breaks.ErrInvalidInput):
			h.logger.Warn("GET /staff-breaks - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /staff-breaks - Failed to list breaks: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff-breaks - Breaks retrieved successfully: staff_id=%s, count=%d", staffID, len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBreakList(result))
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
