package migrations

import (
	"context"
	"fmt"

	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
)

// Схема совместима с postgres и sqlite: даты хранятся текстом YYYY-MM-DD,
// время суток текстом HH:MM, списки идентификаторов JSON-массивом.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS staff (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT,
		phone         TEXT,
		working_hours TEXT NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		category         TEXT NOT NULL DEFAULT 'general',
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
		price            NUMERIC(10, 2) NOT NULL,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                  TEXT PRIMARY KEY,
		staff_id            TEXT NOT NULL REFERENCES staff (id),
		customer_id         TEXT NOT NULL,
		customer_name       TEXT NOT NULL,
		customer_email      TEXT NOT NULL,
		customer_phone      TEXT NOT NULL,
		service_ids         TEXT NOT NULL,
		booking_date        TEXT NOT NULL,
		booking_time        TEXT NOT NULL,
		duration_minutes    INTEGER NOT NULL CHECK (duration_minutes > 0),
		total_price         NUMERIC(10, 2) NOT NULL,
		kind                TEXT NOT NULL,
		status              TEXT NOT NULL,
		payment_method      TEXT NOT NULL,
		payment_status      TEXT NOT NULL,
		is_home_service     BOOLEAN NOT NULL DEFAULT FALSE,
		service_address     TEXT,
		travel_fee          NUMERIC(10, 2) NOT NULL DEFAULT 0,
		notes               TEXT,
		admin_notes         TEXT,
		cancellation_reason TEXT,
		cancelled_at        TIMESTAMP,
		created_at          TIMESTAMP NOT NULL,
		updated_at          TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_staff_date ON bookings (staff_id, booking_date)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status_date ON bookings (status, booking_date)`,
	`CREATE TABLE IF NOT EXISTS staff_breaks (
		id             TEXT PRIMARY KEY,
		staff_id       TEXT NOT NULL REFERENCES staff (id),
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL,
		start_time     TEXT NOT NULL,
		end_time       TEXT NOT NULL,
		break_type     TEXT NOT NULL,
		reason         TEXT,
		is_recurring   BOOLEAN NOT NULL DEFAULT FALSE,
		recurring_days TEXT NOT NULL,
		created_by     TEXT,
		created_at     TIMESTAMP NOT NULL,
		updated_at     TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_breaks_staff_dates ON staff_breaks (staff_id, start_date, end_date)`,
	`CREATE TABLE IF NOT EXISTS corporate_bookings (
		booking_id           TEXT PRIMARY KEY REFERENCES bookings (id),
		company_name         TEXT NOT NULL,
		contact_person       TEXT NOT NULL,
		company_email        TEXT NOT NULL,
		company_phone        TEXT NOT NULL,
		company_address      TEXT NOT NULL,
		company_city         TEXT NOT NULL,
		company_postal_code  TEXT NOT NULL,
		employees            TEXT NOT NULL,
		services_price       NUMERIC(10, 2) NOT NULL,
		company_travel_fee   NUMERIC(10, 2) NOT NULL,
		special_requirements TEXT,
		created_at           TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS booking_settings (
		id                         INTEGER PRIMARY KEY,
		home_service_enabled       BOOLEAN NOT NULL,
		home_service_fee           NUMERIC(10, 2) NOT NULL,
		advance_booking_days       INTEGER NOT NULL,
		min_booking_notice_minutes INTEGER NOT NULL,
		updated_at                 TIMESTAMP NOT NULL
	)`,
}

// Apply создает таблицы и индексы, если их еще нет
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrations: statement %d: %w", i, err)
		}
	}
	return nil
}
