package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// ToServiceRequest собирает запрос на список бронирований из query параметров
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := query.Get("staffId"); v != "" {
		req.StaffID = &v
	}
	if v := query.Get("customerId"); v != "" {
		req.CustomerID = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	var err error
	if req.StartDate, err = optionalDate(query.Get("from")); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if req.EndDate, err = optionalDate(query.Get("to")); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	if v := query.Get("includeInactive"); v != "" {
		if req.IncludeInactive, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
	}

	return req, nil
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
