package corporate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/sqlbuilder"
)

var (
	// ErrDetailsNotFound возвращается, когда у бронирования нет корпоративных данных
	ErrDetailsNotFound = errors.New("corporate.repository: corporate details not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("corporate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("corporate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("corporate.repository: failed to scan row")
)

const tableCorporate = "corporate_bookings"

var corporateColumns = []string{
	"booking_id",
	"company_name",
	"contact_person",
	"company_email",
	"company_phone",
	"company_address",
	"company_city",
	"company_postal_code",
	"employees",
	"services_price",
	"company_travel_fee",
	"special_requirements",
	"created_at",
}

// Repository репозиторий корпоративных данных бронирований
type Repository struct {
	db      dbmetrics.DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Create сохраняет данные компании для уже созданного бронирования.
// Вызывается в той же транзакции, что и запись бронирования.
func (r *Repository) Create(ctx context.Context, d *domain.CorporateDetails) (*domain.CorporateDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	employees, err := json.Marshal(d.Employees)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal employees: %v", ErrBuildQuery, err)
	}
	d.CreatedAt = time.Now().UTC()

	query, args, err := r.dialect.Insert(tableCorporate).
		Columns(corporateColumns...).
		Values(
			d.BookingID,
			d.CompanyName,
			d.ContactPerson,
			d.CompanyEmail,
			d.CompanyPhone,
			d.CompanyAddress,
			d.CompanyCity,
			d.CompanyPostalCode,
			string(employees),
			d.ServicesPrice,
			d.CompanyTravelFee,
			d.SpecialRequirements,
			d.CreatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return d, nil
}

// GetByBookingID получает данные компании по ID бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.CorporateDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(corporateColumns...).
		From(tableCorporate).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		d         domain.CorporateDetails
		employees string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.BookingID,
		&d.CompanyName,
		&d.ContactPerson,
		&d.CompanyEmail,
		&d.CompanyPhone,
		&d.CompanyAddress,
		&d.CompanyCity,
		&d.CompanyPostalCode,
		&employees,
		&d.ServicesPrice,
		&d.CompanyTravelFee,
		&d.SpecialRequirements,
		&d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDetailsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan details: %w", ErrScanRow, err)
	}

	if err := json.Unmarshal([]byte(employees), &d.Employees); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - unmarshal employees: %w", ErrScanRow, err)
	}

	return &d, nil
}
