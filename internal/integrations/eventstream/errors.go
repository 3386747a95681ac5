package eventstream

import "errors"

var (
	// ErrPublisherClosed возвращается при публикации в закрытый publisher
	ErrPublisherClosed = errors.New("eventstream: publisher is closed")

	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("eventstream: invalid config")

	// ErrPublish возвращается, если сообщение не удалось записать
	ErrPublish = errors.New("eventstream: publish failed")
)
