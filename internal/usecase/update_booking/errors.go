package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrInvalidDate возвращается при переносе на дату в прошлом
	ErrInvalidDate = errors.New("update_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("update_booking: date is too far in the future")

	// ErrSlotNoLongerAvailable возвращается, когда новое время недоступно
	ErrSlotNoLongerAvailable = errors.New("update_booking: slot is no longer available")

	// ErrInvalidState возвращается при недопустимом переходе статуса
	ErrInvalidState = errors.New("update_booking: invalid booking state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
