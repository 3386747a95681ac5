package create_corporate_booking

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден или не принимает записи
	ErrStaffNotFound = errors.New("create_corporate_booking: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_corporate_booking: service not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_corporate_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_corporate_booking: date is too far in the future")

	// ErrSlotNoLongerAvailable возвращается, когда выбранный слот уже недоступен
	ErrSlotNoLongerAvailable = errors.New("create_corporate_booking: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_corporate_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_corporate_booking: internal error")
)
