package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/sqlbuilder"
)

var (
	// ErrSettingsNotFound возвращается, когда настройки еще не сохранялись
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)

const (
	tableSettings = "booking_settings"

	// настройки хранятся одной строкой
	settingsRowID = 1
)

// Repository репозиторий настроек бронирования
type Repository struct {
	db      dbmetrics.DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Get получает текущие настройки
func (r *Repository) Get(ctx context.Context) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(
		"home_service_enabled",
		"home_service_fee",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.HomeServiceEnabled,
		&s.HomeServiceFee,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	return &s, nil
}

// Upsert сохраняет настройки: обновляет строку, а если её нет, создает
func (r *Repository) Upsert(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.UpdatedAt = time.Now().UTC()

	query, args, err := r.dialect.Update(tableSettings).
		Set("home_service_enabled", s.HomeServiceEnabled).
		Set("home_service_fee", s.HomeServiceFee).
		Set("advance_booking_days", s.AdvanceBookingDays).
		Set("min_booking_notice_minutes", s.MinBookingNoticeMinutes).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute update: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - rows affected: %w", ErrExecQuery, err)
	}
	if affected > 0 {
		return s, nil
	}

	query, args, err = r.dialect.Insert(tableSettings).
		Columns(
			"id",
			"home_service_enabled",
			"home_service_fee",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"updated_at",
		).
		Values(
			settingsRowID,
			s.HomeServiceEnabled,
			s.HomeServiceFee,
			s.AdvanceBookingDays,
			s.MinBookingNoticeMinutes,
			s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}
