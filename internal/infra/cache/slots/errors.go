package slots

import "errors"

var (
	// ErrNilClient возвращается, если Redis клиент не инициализирован
	ErrNilClient = errors.New("slots cache: redis client is nil")

	// ErrCache возвращается при ошибках обращения к кэшу
	ErrCache = errors.New("slots cache: operation failed")
)
