package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием мастера
	ErrSlotConflict = errors.New("slot conflict: interval overlaps an active booking")

	// ErrInvalidState возвращается при недопустимом переходе статуса
	ErrInvalidState = errors.New("invalid booking state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
