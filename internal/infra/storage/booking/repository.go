package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/sqlbuilder"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"staff_id",
	"customer_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"service_ids",
	"booking_date",
	"booking_time",
	"duration_minutes",
	"total_price",
	"kind",
	"status",
	"payment_method",
	"payment_status",
	"is_home_service",
	"service_address",
	"travel_fee",
	"notes",
	"admin_notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Create сохраняет новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Проверка пересечений здесь не выполняется: это делает реестр бронирований внутри той же транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query, args, err := r.dialect.Insert(tableBookings).
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.StaffID,
			booking.CustomerID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			types.StringList(booking.ServiceIDs),
			types.FormatDate(booking.BookingDate),
			booking.BookingTime,
			booking.DurationMinutes,
			booking.TotalPrice,
			string(booking.Kind),
			string(booking.Status),
			string(booking.PaymentMethod),
			string(booking.PaymentStatus),
			booking.IsHomeService,
			booking.ServiceAddress,
			booking.TravelFee,
			booking.Notes,
			booking.AdminNotes,
			booking.CancellationReason,
			booking.CancelledAt,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), если СУБД это поддерживает.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.dialect.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})
	selectBuilder = r.lockIfInTx(ctx, selectBuilder)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListActiveByStaffAndDate возвращает активные бронирования мастера на дату, упорядоченные по времени.
// excludeID (если не пустой) исключается из выборки, это нужно при переносе бронирования.
// Внутри транзакции строки блокируются (FOR UPDATE), если СУБД это поддерживает.
func (r *Repository) ListActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.dialect.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"staff_id":     staffID,
			"booking_date": types.FormatDate(date),
			"status":       statusStrings(domain.ActiveStatuses),
		}).
		OrderBy("booking_time ASC")

	if excludeID != "" {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}
	selectBuilder = r.lockIfInTx(ctx, selectBuilder)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaffAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// List получает бронирования с гибкой фильтрацией
//
// Примеры использования:
//
// 1. Все активные бронирования мастера:
//    filter := domain.BookingsFilter{StaffID: &staffID}
//
// 2. Бронирования за период включая отмененные:
//    filter := domain.BookingsFilter{StartDate: &from, EndDate: &to, IncludeInactive: true}
//
// 3. Только подтвержденные:
//    filter := domain.BookingsFilter{Statuses: []domain.BookingStatus{domain.StatusConfirmed}}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.dialect.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("booking_date ASC", "booking_time ASC")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": types.FormatDate(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": types.FormatDate(*filter.EndDate)})
	}

	// Явный список статусов важнее флага IncludeInactive
	switch {
	case len(filter.Statuses) > 0:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	case !filter.IncludeInactive:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateSchedule переносит бронирование на новую дату и время и выставляет статус
func (r *Repository) UpdateSchedule(ctx context.Context, id string, date time.Time, bookingTime types.TimeString, status domain.BookingStatus) error {
	query, args, err := r.dialect.Update(tableBookings).
		Set("booking_date", types.FormatDate(date)).
		Set("booking_time", bookingTime).
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "UpdateSchedule", query, args)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	query, args, err := r.dialect.Update(tableBookings).
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "UpdateStatus", query, args)
}

// Cancel помечает бронирование отмененным. Строка не удаляется.
func (r *Repository) Cancel(ctx context.Context, id string, reason *string) error {
	now := time.Now().UTC()

	query, args, err := r.dialect.Update(tableBookings).
		Set("status", string(domain.StatusCancelled)).
		Set("payment_status", string(domain.PaymentCancelled)).
		Set("cancellation_reason", reason).
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "Cancel", query, args)
}

// UpdateDetails обновляет статус оплаты и заметки администратора; nil-поля не меняются
func (r *Repository) UpdateDetails(ctx context.Context, id string, paymentStatus *domain.PaymentStatus, adminNotes *string) error {
	updateBuilder := r.dialect.Update(tableBookings).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	if paymentStatus != nil {
		updateBuilder = updateBuilder.Set("payment_status", string(*paymentStatus))
	}
	if adminNotes != nil {
		updateBuilder = updateBuilder.Set("admin_notes", *adminNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	return r.execUpdate(ctx, "UpdateDetails", query, args)
}

func (r *Repository) execUpdate(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) lockIfInTx(ctx context.Context, b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if dbmetrics.IsInTransaction(ctx) && r.dialect.SupportsRowLocks() {
		return b.Suffix("FOR UPDATE")
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking     domain.Booking
		serviceIDs  types.StringList
		bookingDate string
		kind        string
		status      string
		method      string
		payment     string
	)

	err := row.Scan(
		&booking.ID,
		&booking.StaffID,
		&booking.CustomerID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&serviceIDs,
		&bookingDate,
		&booking.BookingTime,
		&booking.DurationMinutes,
		&booking.TotalPrice,
		&kind,
		&status,
		&method,
		&payment,
		&booking.IsHomeService,
		&booking.ServiceAddress,
		&booking.TravelFee,
		&booking.Notes,
		&booking.AdminNotes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := types.ParseDBDate(bookingDate)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = date
	booking.ServiceIDs = []string(serviceIDs)
	booking.Kind = domain.BookingKind(kind)
	booking.Status = domain.BookingStatus(status)
	booking.PaymentMethod = domain.PaymentMethod(method)
	booking.PaymentStatus = domain.PaymentStatus(payment)

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
