package breaks

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

const tableBreaks = "staff_breaks"

var breakColumns = []string{
	"id",
	"staff_id",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"break_type",
	"reason",
	"is_recurring",
	"recurring_days",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий перерывов мастеров
type Repository struct {
	db      dbmetrics.DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория перерывов
func NewRepository(db dbmetrics.DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Create сохраняет новый перерыв
func (r *Repository) Create(ctx context.Context, b *domain.Break) (*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	query, args, err := r.dialect.Insert(tableBreaks).
		Columns(breakColumns...).
		Values(
			b.ID,
			b.StaffID,
			types.FormatDate(b.StartDate),
			types.FormatDate(b.EndDate),
			b.StartTime,
			b.EndTime,
			string(b.Type),
			b.Reason,
			b.IsRecurring,
			weekdayNames(b.RecurringDays),
			b.CreatedBy,
			b.CreatedAt,
			b.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает перерыв по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(breakColumns...).
		From(tableBreaks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBreak(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBreakNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan break: %w", ErrScanRow, err)
	}

	return b, nil
}

// ListByStaff возвращает перерывы мастера, пересекающиеся с периодом [from, to].
// Пустой staffID означает всех мастеров, nil-границы не ограничивают период.
func (r *Repository) ListByStaff(ctx context.Context, staffID string, from, to *time.Time) ([]*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.dialect.Select(breakColumns...).
		From(tableBreaks).
		OrderBy("start_date ASC", "start_time ASC")

	if staffID != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": staffID})
	}
	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": types.FormatDate(*from)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": types.FormatDate(*to)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByStaff", query, args)
}

// ListForDate возвращает перерывы мастера, диапазон дат которых содержит date.
// Повторяющиеся перерывы возвращаются без учета дня недели, разворачивает их калькулятор доступности.
func (r *Repository) ListForDate(ctx context.Context, staffID string, date time.Time) ([]*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := types.FormatDate(date)
	query, args, err := r.dialect.Select(breakColumns...).
		From(tableBreaks).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListForDate", query, args)
}

// Update перезаписывает изменяемые поля перерыва
func (r *Repository) Update(ctx context.Context, b *domain.Break) (*domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	b.UpdatedAt = time.Now().UTC()

	query, args, err := r.dialect.Update(tableBreaks).
		Set("start_date", types.FormatDate(b.StartDate)).
		Set("end_date", types.FormatDate(b.EndDate)).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("break_type", string(b.Type)).
		Set("reason", b.Reason).
		Set("is_recurring", b.IsRecurring).
		Set("recurring_days", weekdayNames(b.RecurringDays)).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("%w: Update - rows affected: %w", ErrExecQuery, err)
	} else if affected == 0 {
		return nil, ErrBreakNotFound
	}

	return b, nil
}

// Delete удаляет перерыв
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Delete(tableBreaks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBreakNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) ([]*domain.Break, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Break, 0)
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan break: %w", ErrScanRow, op, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBreak(row rowScanner) (*domain.Break, error) {
	var (
		b         domain.Break
		startDate string
		endDate   string
		breakType string
		days      types.StringList
	)

	err := row.Scan(
		&b.ID,
		&b.StaffID,
		&startDate,
		&endDate,
		&b.StartTime,
		&b.EndTime,
		&breakType,
		&b.Reason,
		&b.IsRecurring,
		&days,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if b.StartDate, err = types.ParseDBDate(startDate); err != nil {
		return nil, err
	}
	if b.EndDate, err = types.ParseDBDate(endDate); err != nil {
		return nil, err
	}
	b.Type = domain.BreakType(breakType)

	b.RecurringDays = make([]time.Weekday, 0, len(days))
	for _, name := range days {
		wd, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		b.RecurringDays = append(b.RecurringDays, wd)
	}

	return &b, nil
}

func weekdayNames(days []time.Weekday) types.StringList {
	names := make(types.StringList, len(days))
	for i, d := range days {
		names[i] = domain.WeekdayName(d)
	}
	return names
}
