package get_available_slots

import (
	"strconv"
	"strings"

	getAvailableSlots "github.com/m04kA/barbershop-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StaffID         string   `json:"staffId"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // ["09:00", "09:30"]
}

// ToUseCaseRequest собирает запрос use case из параметров URL.
// serviceIds - список через запятую, duration - минуты.
func ToUseCaseRequest(staffID, dateStr, serviceIDs, duration string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	req := &getAvailableSlots.Request{
		StaffID: staffID,
		Date:    date,
	}

	if serviceIDs != "" {
		for _, id := range strings.Split(serviceIDs, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.ServiceIDs = append(req.ServiceIDs, id)
			}
		}
	}

	if duration != "" {
		minutes, err := strconv.Atoi(duration)
		if err != nil {
			return nil, errInvalidDuration
		}
		req.DurationMinutes = &minutes
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &AvailableSlotsResponse{
		StaffID:         resp.StaffID,
		Date:            types.FormatDate(resp.Date),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
