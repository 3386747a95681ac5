package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidRequest возвращается, если шлюз отклонил уведомление
	ErrInvalidRequest = errors.New("mailer client: notification rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrUnavailable возвращается, если шлюз недоступен
	ErrUnavailable = errors.New("mailer client: gateway unavailable")
)
