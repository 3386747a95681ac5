package breaks

import "errors"

var (
	// ErrBreakNotFound возвращается, когда перерыв не найден
	ErrBreakNotFound = errors.New("breaks.repository: break not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("breaks.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("breaks.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("breaks.repository: failed to scan row")
)
