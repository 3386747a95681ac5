package create_break

import (
	"errors"
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/breaks"
	"github.com/m04kA/barbershop-booking/internal/service/breaks/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBreak       = "некорректные данные перерыва"
	msgStaffNotFound      = "мастер не найден"
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

// Handle POST /api/v1/staff-breaks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBreakRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff-breaks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, breaks.ErrInvalidInput):
			h.logger.Warn("POST /staff-breaks - Invalid break: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBreak)

		case errors.Is(err, breaks.ErrStaffNotFound):
			h.logger.Warn("POST /staff-breaks - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("POST /staff-breaks - Failed to create break: staff_id=%s, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff-breaks - Break created successfully: break_id=%s, staff_id=%s", created.ID, created.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBreak(created))
}
